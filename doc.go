// Package client is the data-access layer for the GPU Grid marketplace:
// it authenticates users against the marketplace API, carries the bearer
// token session across process restarts, and mediates every HTTP call
// between application views and the backend.
//
// The package provides:
//  1. An APIClient with a fixed base URL, JSON content negotiation,
//     cache-busting headers, and a cookie jar. Request interceptors inject
//     the session credential; failures are normalized into *APIError.
//  2. A SessionStore, an observable single-slot value cell that mirrors
//     every change to a SessionStorage backend (JSON file, local SQLite via
//     Bun, or a no-op for environments without a durable medium).
//  3. An Authenticator orchestrating login, registration, current-user
//     retrieval, and logout over the client and the store.
//  4. Marketplace resource handles (Gpus, Tasks, Payments) that pass opaque
//     payloads through the authenticated pipeline.
//
// # Error Handling
//
// Auth failures are exposed as rich sentinel errors that callers can match
// with the predicate helpers: IsInvalidCredentials, IsValidationFailed,
// IsMalformedResponse, IsNoCredential, IsNetworkFailure. Transport and
// server failures carry a *APIError with the response status and decoded
// body. Storage corruption is recovered locally and never surfaced.
//
// # Concurrency
//
// The SessionStore is safe for concurrent readers; the Authenticator is the
// only writer. Network operations accept a context.Context and honor
// cancellation, but the package imposes no timeouts of its own.
package client
