package decoder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fekuna/ecoscan/internal/apperror"
	"github.com/fekuna/ecoscan/internal/logger"
	"github.com/fekuna/ecoscan/internal/scan"
	"go.uber.org/zap"
)

const StdinDeviceID = "stdin"

// LineDecoder serves keyboard-wedge scanners, which type one code per line.
// A single goroutine owns the reader for the decoder's lifetime; streams
// opened later take over the lines it produces. Blank lines count as frames
// without a code.
type LineDecoder struct {
	r      io.Reader
	device scan.Device
	logger logger.ZapLogger

	once  sync.Once
	lines chan scan.Event

	// pending holds lines a closed stream took but never delivered. The next
	// stream sends them before reading on.
	mu      sync.Mutex
	pending []scan.Event
}

func NewLineDecoder(r io.Reader, log logger.ZapLogger) *LineDecoder {
	return &LineDecoder{
		r:      r,
		device: scan.Device{ID: StdinDeviceID, Label: "keyboard wedge"},
		logger: log,
		lines:  make(chan scan.Event),
	}
}

func (d *LineDecoder) Devices(_ context.Context) ([]scan.Device, error) {
	if d.r == nil {
		return nil, nil
	}
	return []scan.Device{d.device}, nil
}

func (d *LineDecoder) Open(ctx context.Context, deviceID string, mode scan.Mode) (scan.Stream, error) {
	if d.r == nil || deviceID != d.device.ID {
		return nil, fmt.Errorf("device %q: %w", deviceID, apperror.ErrDeviceUnavailable)
	}
	d.once.Do(func() { go d.readLines() })

	ctx, cancel := context.WithCancel(ctx)
	st := &lineStream{
		events: make(chan scan.Event),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	d.logger.Debug("line stream opened", zap.String("mode", mode.String()))
	go d.forward(ctx, st)
	return st, nil
}

func (d *LineDecoder) readLines() {
	defer close(d.lines)

	sc := bufio.NewScanner(d.r)
	for sc.Scan() {
		d.lines <- lineEvent(sc.Text())
	}
	if err := sc.Err(); err != nil {
		d.lines <- scan.Event{Err: fmt.Errorf("%w: read input: %v", apperror.ErrDecodeOther, err)}
	}
}

func lineEvent(line string) scan.Event {
	code := strings.TrimSpace(line)
	if code == "" {
		return scan.Event{Err: apperror.ErrDecodeNoMatch}
	}
	return scan.Event{Text: code}
}

type lineStream struct {
	events chan scan.Event
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *lineStream) Events() <-chan scan.Event { return s.events }

func (s *lineStream) Close() error {
	s.cancel()
	<-s.done
	return nil
}

func (d *LineDecoder) forward(ctx context.Context, s *lineStream) {
	defer close(s.done)
	defer close(s.events)

	for {
		ev, ok := d.takePending()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case ev, ok = <-d.lines:
				if !ok {
					return
				}
			}
		}
		select {
		case s.events <- ev:
		case <-ctx.Done():
			d.requeue(ev)
			return
		}
	}
}

func (d *LineDecoder) takePending() (scan.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.pending) == 0 {
		return scan.Event{}, false
	}
	ev := d.pending[0]
	d.pending = d.pending[1:]
	return ev, true
}

func (d *LineDecoder) requeue(ev scan.Event) {
	d.mu.Lock()
	d.pending = append([]scan.Event{ev}, d.pending...)
	d.mu.Unlock()
}
