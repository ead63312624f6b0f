package client

import "fmt"

// AuthRoutes are the authentication endpoints, relative to the base URL.
type AuthRoutes struct {
	Login    string
	Register string
	Me       string
}

// DefaultAuthRoutes returns the marketplace API's auth endpoints.
func DefaultAuthRoutes() AuthRoutes {
	return AuthRoutes{
		Login:    "/auth/token",
		Register: "/auth/register",
		Me:       "/auth/me",
	}
}

// Marketplace resource endpoints, relative to the base URL.
const (
	RouteGpus             = "/gpus"
	RouteMyGpus           = "/gpus/my-gpus"
	RouteTasks            = "/tasks"
	RoutePayments         = "/payments"
	RoutePaymentsSent     = "/payments/sent"
	RoutePaymentsReceived = "/payments/received"
)

// RouteGpuDetail returns the endpoint for a single GPU listing.
func RouteGpuDetail(id int64) string {
	return fmt.Sprintf("%s/%d", RouteGpus, id)
}

// RouteTaskDetail returns the endpoint for a single task.
func RouteTaskDetail(id int64) string {
	return fmt.Sprintf("%s/%d", RouteTasks, id)
}

// RouteTaskCancel returns the cancellation endpoint for a task.
func RouteTaskCancel(id int64) string {
	return fmt.Sprintf("%s/%d/cancel", RouteTasks, id)
}

// RouteTaskPayments returns the payment-creation endpoint for a task.
func RouteTaskPayments(taskID int64) string {
	return fmt.Sprintf("%s/%d/payments", RouteTasks, taskID)
}

// RoutePaymentDetail returns the endpoint for a single payment.
func RoutePaymentDetail(id int64) string {
	return fmt.Sprintf("%s/%d", RoutePayments, id)
}
