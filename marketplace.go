package client

import (
	"context"
	"encoding/json"
)

// Marketplace exposes the GPU-rental resource endpoints through the
// authenticated pipeline. Record shapes are owned by the backend and passed
// through opaque; callers decode the raw payloads into their own view types.
type Marketplace struct {
	api *APIClient
}

// NewMarketplace wires the resource handles over an APIClient.
func NewMarketplace(api *APIClient) *Marketplace {
	return &Marketplace{api: api}
}

// Gpus returns the GPU listings handle.
func (m *Marketplace) Gpus() *GPUService {
	return &GPUService{api: m.api}
}

// Tasks returns the compute-task handle.
func (m *Marketplace) Tasks() *TaskService {
	return &TaskService{api: m.api}
}

// Payments returns the payments handle.
func (m *Marketplace) Payments() *PaymentService {
	return &PaymentService{api: m.api}
}

// GPUService covers the GPU listing endpoints.
type GPUService struct {
	api *APIClient
}

// List fetches GPU listings. Filters (status, model, price range) go through
// as query parameters.
func (s *GPUService) List(ctx context.Context, opts ...RequestOption) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Get(ctx, RouteGpus, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single GPU listing.
func (s *GPUService) Get(ctx context.Context, id int64) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Get(ctx, RouteGpuDetail(id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Mine fetches the listings owned by the current user.
func (s *GPUService) Mine(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Get(ctx, RouteMyGpus, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create publishes a new listing.
func (s *GPUService) Create(ctx context.Context, payload any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Post(ctx, RouteGpus, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces a listing.
func (s *GPUService) Update(ctx context.Context, id int64, payload any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Put(ctx, RouteGpuDetail(id), payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a listing.
func (s *GPUService) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, RouteGpuDetail(id), nil)
}

// TaskService covers the compute-task endpoints.
type TaskService struct {
	api *APIClient
}

// List fetches the current user's tasks.
func (s *TaskService) List(ctx context.Context, opts ...RequestOption) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Get(ctx, RouteTasks, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single task.
func (s *TaskService) Get(ctx context.Context, id int64) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Get(ctx, RouteTaskDetail(id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create submits a new task.
func (s *TaskService) Create(ctx context.Context, payload any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Post(ctx, RouteTasks, payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel requests cancellation of a running task.
func (s *TaskService) Cancel(ctx context.Context, id int64) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Post(ctx, RouteTaskCancel(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PaymentService covers the payment endpoints.
type PaymentService struct {
	api *APIClient
}

// List fetches all payments visible to the current user.
func (s *PaymentService) List(ctx context.Context, opts ...RequestOption) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Get(ctx, RoutePayments, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Sent fetches payments the current user has made.
func (s *PaymentService) Sent(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Get(ctx, RoutePaymentsSent, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Received fetches payments the current user has received.
func (s *PaymentService) Received(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Get(ctx, RoutePaymentsReceived, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single payment.
func (s *PaymentService) Get(ctx context.Context, id int64) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Get(ctx, RoutePaymentDetail(id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateForTask pays for a completed task.
func (s *PaymentService) CreateForTask(ctx context.Context, taskID int64, payload any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Post(ctx, RouteTaskPayments(taskID), payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}
