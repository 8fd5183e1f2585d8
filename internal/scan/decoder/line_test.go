package decoder

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/ecoscan/internal/apperror"
	"github.com/fekuna/ecoscan/internal/logger"
	"github.com/fekuna/ecoscan/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func recv(t *testing.T, events <-chan scan.Event) (scan.Event, bool) {
	t.Helper()
	select {
	case ev, ok := <-events:
		return ev, ok
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return scan.Event{}, false
	}
}

func TestLineDecoder_Lines(t *testing.T) {
	d := NewLineDecoder(strings.NewReader("123456789\n\n  987654321 \n"), logger.NewNop())

	devices, err := d.Devices(context.Background())
	require.NoError(t, err)
	require.Equal(t, []scan.Device{{ID: StdinDeviceID, Label: "keyboard wedge"}}, devices)

	st, err := d.Open(context.Background(), StdinDeviceID, scan.ModeBarcode)
	require.NoError(t, err)
	defer st.Close()

	ev, _ := recv(t, st.Events())
	assert.Equal(t, "123456789", ev.Text)

	ev, _ = recv(t, st.Events())
	assert.ErrorIs(t, ev.Err, apperror.ErrDecodeNoMatch)

	ev, _ = recv(t, st.Events())
	assert.Equal(t, "987654321", ev.Text)

	_, ok := recv(t, st.Events())
	assert.False(t, ok, "stream ends at EOF")
}

func TestLineDecoder_NextStreamResumes(t *testing.T) {
	d := NewLineDecoder(strings.NewReader("a\nb\n"), logger.NewNop())

	first, err := d.Open(context.Background(), StdinDeviceID, scan.ModeBarcode)
	require.NoError(t, err)
	ev, _ := recv(t, first.Events())
	assert.Equal(t, "a", ev.Text)
	require.NoError(t, first.Close())
	require.NoError(t, first.Close())

	second, err := d.Open(context.Background(), StdinDeviceID, scan.ModeQR)
	require.NoError(t, err)
	defer second.Close()

	ev, _ = recv(t, second.Events())
	assert.Equal(t, "b", ev.Text)
	_, ok := recv(t, second.Events())
	assert.False(t, ok)
}

func TestLineDecoder_CloseKeepsUndeliveredLine(t *testing.T) {
	pr, pw := io.Pipe()
	d := NewLineDecoder(pr, logger.NewNop())

	first, err := d.Open(context.Background(), StdinDeviceID, scan.ModeBarcode)
	require.NoError(t, err)
	_, err = io.WriteString(pw, "123456789\n")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Each stop and start cycle hands the same line on.
	for _, mode := range []scan.Mode{scan.ModeQR, scan.ModeBarcode} {
		st, err := d.Open(context.Background(), StdinDeviceID, mode)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
		require.NoError(t, st.Close())
	}

	last, err := d.Open(context.Background(), StdinDeviceID, scan.ModeQR)
	require.NoError(t, err)
	ev, _ := recv(t, last.Events())
	assert.Equal(t, "123456789", ev.Text)

	require.NoError(t, pw.Close())
	_, ok := recv(t, last.Events())
	assert.False(t, ok)
	require.NoError(t, last.Close())
}

func TestLineDecoder_UnknownDevice(t *testing.T) {
	d := NewLineDecoder(strings.NewReader(""), logger.NewNop())

	_, err := d.Open(context.Background(), "cam0", scan.ModeBarcode)

	assert.ErrorIs(t, err, apperror.ErrDeviceUnavailable)
}

func TestLineDecoder_NoReaderHasNoDevices(t *testing.T) {
	d := NewLineDecoder(nil, logger.NewNop())

	devices, err := d.Devices(context.Background())

	require.NoError(t, err)
	assert.Empty(t, devices)
}
