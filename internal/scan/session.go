package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fekuna/ecoscan/internal/apperror"
	"github.com/fekuna/ecoscan/internal/catalog"
	"github.com/fekuna/ecoscan/internal/logger"
	"github.com/fekuna/ecoscan/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	NotFoundName        = "Product not found"
	NotFoundDescription = "This product is not in our database."
	BannerAdded         = "Product added to cart!"
	NoticeAddFailed     = "Unable to add item to cart"
	NoticeLoginRequired = "Log in again to add items to your cart."
	MessageNoDevice     = "No camera found. Connect a device and press Start."

	scorePrefix  = "Sustainability Score: "
	scoreUnknown = "N/A"
)

// ResultPanel is what a mode's result area shows. Each decode result
// replaces the whole panel.
type ResultPanel struct {
	Visible     bool
	Found       bool
	Code        string
	ProductID   string
	Name        string
	Description string
	Score       string
	// Banner is the success affordance; there is at most one.
	Banner string
	Notice string
}

// Controls mirrors the start/stop buttons and video surface of a mode.
type Controls struct {
	StartVisible bool
	StopVisible  bool
	VideoVisible bool
	Message      string
}

func idleControls() Controls {
	return Controls{StartVisible: true}
}

type State struct {
	Scanning bool
	Mode     Mode
}

func (s State) String() string {
	if !s.Scanning {
		return "Idle"
	}
	return "Scanning(" + s.Mode.String() + ")"
}

// ResultFunc is notified after a panel changes. It runs on the decode
// goroutine and must not call Start, Stop, ShowTab or Close.
type ResultFunc func(mode Mode, panel ResultPanel)

type run struct {
	mode   Mode
	stream Stream
	cancel context.CancelFunc
	done   chan struct{}
}

// Session owns the capture device and lets at most one mode decode at a time.
type Session struct {
	decoder Decoder
	catalog catalog.Repository
	cart    CartAdder
	device  string
	logger  logger.ZapLogger

	mu       sync.Mutex
	active   *run
	visible  Mode
	controls [2]Controls

	panelMu  sync.Mutex
	panels   [2]ResultPanel
	onResult ResultFunc
}

// NewSession builds an idle session. device is the preferred device id; when
// empty or not present the first listed device is used.
func NewSession(dec Decoder, cat catalog.Repository, cart CartAdder, device string, log logger.ZapLogger) *Session {
	return &Session{
		decoder:  dec,
		catalog:  cat,
		cart:     cart,
		device:   device,
		logger:   log.With(zap.String("session_id", uuid.NewString())),
		controls: [2]Controls{idleControls(), idleControls()},
	}
}

func (s *Session) OnResult(fn ResultFunc) {
	s.panelMu.Lock()
	s.onResult = fn
	s.panelMu.Unlock()
}

// Start begins decoding for mode. An active stream of the other mode is
// released first. Starting the mode that is already scanning does nothing.
func (s *Session) Start(ctx context.Context, mode Mode) error {
	if !mode.valid() {
		return fmt.Errorf("start scan: invalid mode %d", int(mode))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reapLocked()
	if s.active != nil && s.active.mode == mode {
		return nil
	}
	if err := s.stopLocked(); err != nil {
		s.logger.Warn("release previous stream", zap.Error(err))
	}
	s.visible = mode

	devices, err := s.decoder.Devices(ctx)
	if err != nil {
		s.controls[mode] = idleControls()
		return fmt.Errorf("list devices: %w", err)
	}
	if len(devices) == 0 {
		s.controls[mode] = Controls{StartVisible: true, Message: MessageNoDevice}
		s.logger.Warn("no video input device", zap.String("mode", mode.String()))
		return apperror.ErrDeviceUnavailable
	}
	deviceID := s.pickDevice(devices)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stream, err := s.decoder.Open(runCtx, deviceID, mode)
	if err != nil {
		cancel()
		s.controls[mode] = idleControls()
		return fmt.Errorf("open %s stream: %w", mode, err)
	}

	s.hidePanel(mode)
	r := &run{mode: mode, stream: stream, cancel: cancel, done: make(chan struct{})}
	s.active = r
	s.controls[mode] = Controls{StopVisible: true, VideoVisible: true}

	s.logger.Info("scan started",
		zap.String("mode", mode.String()),
		zap.String("device", deviceID),
		zap.String("target", mode.Target()),
	)
	go s.decodeLoop(runCtx, r)
	return nil
}

// Stop releases mode's stream if it is the one scanning. It waits for the
// decode loop to exit and is a no-op otherwise.
func (s *Session) Stop(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reapLocked()
	if s.active == nil || s.active.mode != mode {
		return nil
	}
	return s.stopLocked()
}

// ShowTab switches the visible mode, stopping the other mode's stream.
func (s *Session) ShowTab(_ context.Context, mode Mode) error {
	if !mode.valid() {
		return fmt.Errorf("show tab: invalid mode %d", int(mode))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.visible = mode
	s.reapLocked()
	if s.active != nil && s.active.mode != mode {
		return s.stopLocked()
	}
	return nil
}

// Close stops whatever is scanning.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked()
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reapLocked()
	if s.active == nil {
		return State{Mode: s.visible}
	}
	return State{Scanning: true, Mode: s.active.mode}
}

func (s *Session) VisibleTab() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

func (s *Session) Controls(mode Mode) Controls {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reapLocked()
	if !mode.valid() {
		return Controls{}
	}
	return s.controls[mode]
}

func (s *Session) Panel(mode Mode) ResultPanel {
	if !mode.valid() {
		return ResultPanel{}
	}
	s.panelMu.Lock()
	defer s.panelMu.Unlock()
	return s.panels[mode]
}

// Done is closed when the current decode loop exits, either through Stop or
// because the stream ended. It is already closed while idle.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return s.active.done
}

func (s *Session) pickDevice(devices []Device) string {
	if s.device != "" {
		for _, d := range devices {
			if d.ID == s.device {
				return d.ID
			}
		}
		s.logger.Warn("configured device not found, using first device", zap.String("device", s.device))
	}
	return devices[0].ID
}

// stopLocked must be called with s.mu held.
func (s *Session) stopLocked() error {
	r := s.active
	if r == nil {
		return nil
	}
	s.active = nil

	r.cancel()
	err := r.stream.Close()
	<-r.done

	s.controls[r.mode] = idleControls()
	s.logger.Info("scan stopped", zap.String("mode", r.mode.String()))
	if err != nil {
		return fmt.Errorf("close %s stream: %w", r.mode, err)
	}
	return nil
}

// reapLocked releases a run whose stream ended on its own.
func (s *Session) reapLocked() {
	if s.active == nil {
		return
	}
	select {
	case <-s.active.done:
		if err := s.stopLocked(); err != nil {
			s.logger.Warn("release ended stream", zap.Error(err))
		}
	default:
	}
}

func (s *Session) decodeLoop(ctx context.Context, r *run) {
	defer close(r.done)

	events := r.stream.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				s.logger.Debug("decode stream ended", zap.String("mode", r.mode.String()))
				return
			}
			s.handleEvent(ctx, r.mode, ev)
		}
	}
}

// handleEvent drops results that finish after the run was stopped.
func (s *Session) handleEvent(ctx context.Context, mode Mode, ev Event) {
	if ctx.Err() != nil {
		return
	}
	if ev.Err != nil {
		if errors.Is(ev.Err, apperror.ErrDecodeNoMatch) {
			return
		}
		s.logger.Error("decode failed", zap.String("mode", mode.String()), zap.Error(ev.Err))
		return
	}

	code := strings.TrimSpace(ev.Text)
	if code == "" {
		return
	}
	s.logger.Debug("decoded", zap.String("mode", mode.String()), zap.String("code", code))

	product, err := s.catalog.FindByCode(ctx, code)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.logger.Error("catalog lookup failed", zap.String("code", code), zap.Error(err))
		return
	}
	if product == nil {
		s.setPanel(mode, notFoundPanel(code))
		return
	}

	panel := foundPanel(code, *product)
	added, err := s.cart.Add(ctx, *product)
	if ctx.Err() != nil {
		s.logger.Debug("scan stopped during add", zap.String("code", code))
		return
	}
	switch {
	case added:
		if err != nil {
			s.logger.Warn("cart reload after add", zap.String("product_id", product.ID), zap.Error(err))
		}
		panel.Banner = BannerAdded
	case err != nil:
		s.logger.Error("add scanned product to cart",
			zap.String("code", code),
			zap.String("product_id", product.ID),
			zap.Error(err),
		)
		panel.Notice = NoticeAddFailed
	default:
		s.logger.Warn("scanned product not added, no session", zap.String("product_id", product.ID))
		panel.Notice = NoticeLoginRequired
	}
	s.setPanel(mode, panel)
}

func foundPanel(code string, p model.Product) ResultPanel {
	return ResultPanel{
		Visible:     true,
		Found:       true,
		Code:        code,
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Score:       scorePrefix + p.SustainabilityScore,
	}
}

func notFoundPanel(code string) ResultPanel {
	return ResultPanel{
		Visible:     true,
		Code:        code,
		Name:        NotFoundName,
		Description: NotFoundDescription,
		Score:       scorePrefix + scoreUnknown,
	}
}

func (s *Session) setPanel(mode Mode, panel ResultPanel) {
	s.panelMu.Lock()
	s.panels[mode] = panel
	fn := s.onResult
	s.panelMu.Unlock()

	if fn != nil {
		fn(mode, panel)
	}
}

func (s *Session) hidePanel(mode Mode) {
	s.panelMu.Lock()
	s.panels[mode].Visible = false
	s.panelMu.Unlock()
}
