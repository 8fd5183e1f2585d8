package scan

import (
	"fmt"
	"strings"
)

// Mode selects which code family a session decodes.
type Mode int

const (
	ModeBarcode Mode = iota
	ModeQR
)

var modeNames = [...]string{
	ModeBarcode: "barcode",
	ModeQR:      "qr",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Other returns the mode that cannot scan while m is active.
func (m Mode) Other() Mode {
	if m == ModeBarcode {
		return ModeQR
	}
	return ModeBarcode
}

// Target names the video surface the decoder renders into for this mode.
func (m Mode) Target() string {
	return m.String() + "-video"
}

func (m Mode) valid() bool {
	return m == ModeBarcode || m == ModeQR
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "barcode", "bar":
		return ModeBarcode, nil
	case "qr", "qrcode":
		return ModeQR, nil
	}
	return 0, fmt.Errorf("unknown scan mode %q", s)
}
