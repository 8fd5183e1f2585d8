package decoder

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fekuna/ecoscan/internal/apperror"
	"github.com/fekuna/ecoscan/internal/logger"
	"github.com/fekuna/ecoscan/internal/scan"
	"github.com/fsnotify/fsnotify"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
	"go.uber.org/zap"
)

// FrameDecoder treats each configured directory as a camera. The capture
// process drops frames into it as PNG or JPEG files; frames have to be moved
// in whole (write elsewhere, then rename) since only creation is watched.
type FrameDecoder struct {
	dirs   []string
	logger logger.ZapLogger
}

func NewFrameDecoder(dirs []string, log logger.ZapLogger) *FrameDecoder {
	return &FrameDecoder{dirs: dirs, logger: log}
}

// Devices lists the configured directories that currently exist.
func (d *FrameDecoder) Devices(_ context.Context) ([]scan.Device, error) {
	var devices []scan.Device
	for _, dir := range d.dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			d.logger.Debug("frame directory unavailable", zap.String("dir", dir), zap.Error(err))
			continue
		}
		devices = append(devices, scan.Device{ID: dir, Label: filepath.Base(dir)})
	}
	return devices, nil
}

func (d *FrameDecoder) Open(ctx context.Context, deviceID string, mode scan.Mode) (scan.Stream, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(deviceID); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w: %v", deviceID, apperror.ErrDeviceUnavailable, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	st := &frameStream{
		watcher: watcher,
		readers: readersFor(mode),
		events:  make(chan scan.Event),
		cancel:  cancel,
		done:    make(chan struct{}),
		logger:  d.logger.With(zap.String("dir", deviceID), zap.String("mode", mode.String())),
	}
	go st.run(ctx)
	return st, nil
}

func readersFor(mode scan.Mode) []gozxing.Reader {
	if mode == scan.ModeQR {
		return []gozxing.Reader{qrcode.NewQRCodeReader()}
	}
	return []gozxing.Reader{oned.NewEAN13Reader(), oned.NewCode128Reader()}
}

type frameStream struct {
	watcher *fsnotify.Watcher
	readers []gozxing.Reader
	events  chan scan.Event
	cancel  context.CancelFunc
	done    chan struct{}
	logger  logger.ZapLogger

	closeOnce sync.Once
	closeErr  error
}

func (s *frameStream) Events() <-chan scan.Event { return s.events }

func (s *frameStream) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.closeErr = s.watcher.Close()
		<-s.done
	})
	return s.closeErr
}

func (s *frameStream) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) || !isFrame(ev.Name) {
				continue
			}
			s.logger.Debug("frame received", zap.String("file", filepath.Base(ev.Name)))
			if !s.send(ctx, s.decodeFile(ev.Name)) {
				return
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			if !s.send(ctx, scan.Event{Err: fmt.Errorf("%w: watcher: %v", apperror.ErrDecodeOther, err)}) {
				return
			}
		}
	}
}

func (s *frameStream) send(ctx context.Context, ev scan.Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *frameStream) decodeFile(path string) scan.Event {
	f, err := os.Open(path)
	if err != nil {
		return scan.Event{Err: fmt.Errorf("%w: open frame: %v", apperror.ErrDecodeOther, err)}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return scan.Event{Err: fmt.Errorf("%w: decode image %s: %v", apperror.ErrDecodeOther, filepath.Base(path), err)}
	}
	return decodeImage(img, s.readers)
}

// decodeImage tries each reader in turn. The frame counts as holding no code
// only when every reader reports not found.
func decodeImage(img image.Image, readers []gozxing.Reader) scan.Event {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return scan.Event{Err: fmt.Errorf("%w: binarize: %v", apperror.ErrDecodeOther, err)}
	}

	var fault error
	for _, r := range readers {
		result, err := r.Decode(bmp, nil)
		if err == nil {
			return scan.Event{Text: result.GetText()}
		}
		var nf gozxing.NotFoundException
		if !errors.As(err, &nf) {
			fault = err
		}
	}
	if fault != nil {
		return scan.Event{Err: fmt.Errorf("%w: %v", apperror.ErrDecodeOther, fault)}
	}
	return scan.Event{Err: apperror.ErrDecodeNoMatch}
}

func isFrame(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
