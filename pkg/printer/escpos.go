package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character sizes for GS !
const (
	FontNormal byte = 0x00
	FontTall   byte = 0x01 // double height, keeps the line width
)

// Common paper widths in characters
const (
	Width58mm = 32
	Width80mm = 48
)

// codePagePC850 is the ESC t table number for PC850 (Multilingual Latin I),
// which covers Portuguese accented characters.
const codePagePC850 = 2

// Document builds an ESC/POS byte stream for thermal printers.
// Text is encoded in code page 850; runes outside it print as '?'.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a new ESC/POS document with the given character width.
// Common widths: 32 for 58mm paper, 48 for 80mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = Width80mm
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Width returns the print width in characters.
func (d *Document) Width() int {
	return d.width
}

// Init sends ESC @ (initialize printer) and selects code page 850.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	d.buf.Write([]byte{ESC, 't', codePagePC850})
	return d
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size, FontNormal or FontTall.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.write(s)
	d.buf.WriteByte(LF)
	return d
}

// Separator prints a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// Example: "Valor:                    R$ 12.50"
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	d.write(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.write(value)
	d.buf.WriteByte(LF)
	return d
}

// SignatureLine prints a centered blank line for a handwritten signature.
func (d *Document) SignatureLine() *Document {
	n := d.width * 2 / 3
	pad := (d.width - n) / 2
	d.buf.WriteString(strings.Repeat(" ", pad))
	d.buf.WriteString(strings.Repeat("_", n))
	d.buf.WriteByte(LF)
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}

func (d *Document) write(s string) {
	for _, r := range s {
		if r < utf8.RuneSelf {
			d.buf.WriteByte(byte(r))
			continue
		}
		if b, ok := charmap.CodePage850.EncodeRune(r); ok {
			d.buf.WriteByte(b)
			continue
		}
		d.buf.WriteByte('?')
	}
}
