package printer

import (
	"bytes"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, "none", p.Type())
	assert.False(t, p.IsConnected())
	assert.ErrorIs(t, p.Print([]byte("x")), ErrNoPrinter)

	_, err = New(Options{Type: "usb"})
	assert.Error(t, err)

	_, err = New(Options{Type: "network"})
	assert.Error(t, err)

	_, err = New(Options{Type: "bluetooth"})
	assert.Error(t, err)
}

func TestUSBPrinter_WritesToDeviceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p := NewUSBPrinter(path)
	assert.True(t, p.IsConnected())
	require.NoError(t, p.Print([]byte("recibo")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "recibo", string(got))
}

func TestNetworkPrinter_SendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		b, _ := io.ReadAll(conn)
		received <- b
	}()

	p := NewNetworkPrinter(ln.Addr().String(), time.Second)
	require.NoError(t, p.Print([]byte{ESC, '@'}))

	select {
	case b := <-received:
		assert.Equal(t, []byte{ESC, '@'}, b)
	case <-time.After(2 * time.Second):
		t.Fatal("printer did not receive data")
	}
}

func TestDocument_KeyValueAndEncoding(t *testing.T) {
	d := NewDocument(Width58mm)
	d.KeyValue("Valor:", "R$ 1.50")
	d.Text("Lançamento")

	out := d.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{ESC, '@', ESC, 't', 2}))
	assert.Contains(t, string(out), "Valor:"+string(bytes.Repeat([]byte(" "), 32-6-7))+"R$ 1.50\n")
	// ç is 0x87 in code page 850
	assert.Contains(t, string(out), "Lan\x87amento\n")
}

func TestDocument_SeparatorAndSignature(t *testing.T) {
	d := NewDocument(0)
	assert.Equal(t, Width80mm, d.Width())

	d.Reset().Separator('-').SignatureLine()
	out := string(d.Bytes())
	assert.Contains(t, out, string(bytes.Repeat([]byte("-"), 48))+"\n")
	assert.Contains(t, out, "        "+string(bytes.Repeat([]byte("_"), 32))+"\n")
}

func TestDocument_FontSize(t *testing.T) {
	d := NewDocument(Width80mm)
	d.SetFontSize(FontTall).Text("TITULO").SetFontSize(FontNormal)

	out := d.Bytes()
	assert.True(t, bytes.HasSuffix(out, []byte{GS, '!', FontTall, 'T', 'I', 'T', 'U', 'L', 'O', LF, GS, '!', FontNormal}))
}
