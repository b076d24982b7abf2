package stream

import "context"

// Consumer pulls analysis requests off a message stream and feeds them
// to the engine. Start blocks until ctx is done.
type Consumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}
