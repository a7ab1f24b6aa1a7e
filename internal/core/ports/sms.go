package ports

import "context"

// SMSSender dispatches a one-time code to a phone through the external
// gateway. The gateway is unreliable; a returned error must surface to the
// caller as a delivery failure distinct from validation errors.
type SMSSender interface {
	Send(ctx context.Context, phone, code string) error
}
