package scan

import (
	"context"

	"github.com/fekuna/ecoscan/internal/model"
)

type Device struct {
	ID    string
	Label string
}

// Event is one decode attempt. Exactly one of Text and Err is set.
// Err matching apperror.ErrDecodeNoMatch means the frame held no code.
type Event struct {
	Text string
	Err  error
}

// Stream is an open decode stream. The Events channel is closed once the
// stream is closed or the context passed to Open is done. Close is safe to
// call more than once.
type Stream interface {
	Events() <-chan Event
	Close() error
}

// Decoder is the capture device plus code decoder.
type Decoder interface {
	Devices(ctx context.Context) ([]Device, error)
	Open(ctx context.Context, deviceID string, mode Mode) (Stream, error)
}

// CartAdder receives every product a scan resolves. added is false when no
// request was made, for example because the session has expired.
type CartAdder interface {
	Add(ctx context.Context, product model.Product) (added bool, err error)
}
