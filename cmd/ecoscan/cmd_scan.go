package main

import (
	"github.com/fekuna/ecoscan/internal/scan"
	"github.com/fekuna/ecoscan/internal/scan/decoder"
	"github.com/fekuna/ecoscan/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		modeName string
		device   string
		frames   []string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan product codes and add them to your cart",
		Long: `Reads codes from a keyboard-wedge scanner on stdin, one per line, or from
camera frames dropped into a directory (--frames or SCAN_FRAMES_DIR).
Every recognised product is added to your cart. Press Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := scan.ParseMode(modeName)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			ok, err := a.loggedIn(ctx)
			if err != nil || !ok {
				return err
			}
			cat, err := a.openCatalog(ctx)
			if err != nil {
				return err
			}
			if device == "" {
				device = a.cfg.Scan.Device
			}

			sess := scan.NewSession(a.decoder(frames), cat, a.cart, device, a.logger)
			defer sess.Close()
			sess.OnResult(func(m scan.Mode, p scan.ResultPanel) {
				a.print(ui.ScanPanel(a.styles, m, p))
			})

			if err := sess.ShowTab(ctx, mode); err != nil {
				return err
			}
			if err := sess.Start(ctx, mode); err != nil {
				a.print(ui.ScanControls(a.styles, mode, sess.Controls(mode)))
				return err
			}
			a.print(ui.ScanControls(a.styles, mode, sess.Controls(mode)))

			select {
			case <-ctx.Done():
			case <-sess.Done():
			}

			if err := sess.Stop(mode); err != nil {
				a.logger.Warn("stop scan", zap.Error(err))
			}
			a.print(ui.ScanControls(a.styles, mode, sess.Controls(mode)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&modeName, "mode", "barcode", "what to scan: barcode or qr")
	f.StringVar(&device, "device", "", "device id to scan with (defaults to SCAN_DEVICE, then the first device)")
	f.StringSliceVar(&frames, "frames", nil, "directories receiving camera frames")
	return cmd
}

// decoder picks camera frames when a frame directory is configured and the
// keyboard-wedge reader on stdin otherwise.
func (a *app) decoder(frames []string) scan.Decoder {
	if len(frames) == 0 {
		frames = a.cfg.Scan.FramesDir
	}
	if len(frames) > 0 {
		return decoder.NewFrameDecoder(frames, a.logger)
	}
	return decoder.NewLineDecoder(a.in, a.logger)
}
