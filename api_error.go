package client

import (
	"fmt"
	"net/http"
)

// APIError is the normalized failure shape every request funnels into: a
// transport failure carries only a message (Status 0, no Body), an
// application failure carries the response status and the decoded body.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Body    any
	Err     error
}

func (e *APIError) Error() string {
	if e == nil {
		return "api error"
	}

	scope := "request"
	if e.Method != "" && e.Path != "" {
		scope = fmt.Sprintf("%s %s", e.Method, e.Path)
	}

	if e.Status > 0 {
		msg := e.Message
		if msg == "" {
			msg = http.StatusText(e.Status)
		}
		return fmt.Sprintf("%s failed: %d %s", scope, e.Status, msg)
	}

	if e.Message != "" {
		return fmt.Sprintf("%s failed: %s", scope, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", scope, e.Err)
	}

	return fmt.Sprintf("%s failed", scope)
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsClientError reports whether the server answered with a 4xx status.
func (e *APIError) IsClientError() bool {
	return e != nil && e.Status >= 400 && e.Status < 500
}

// Metadata returns the error attributes as a map, for structured logging.
func (e *APIError) Metadata() map[string]any {
	if e == nil {
		return nil
	}

	meta := map[string]any{}
	if e.Method != "" {
		meta["method"] = e.Method
	}
	if e.Path != "" {
		meta["path"] = e.Path
	}
	if e.Status != 0 {
		meta["status"] = e.Status
	}
	if e.Message != "" {
		meta["message"] = e.Message
	}
	if e.Body != nil {
		meta["body"] = e.Body
	}

	return meta
}
