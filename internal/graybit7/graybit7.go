// Package graybit7 decodes and encodes the GrayBit-7 image format.
//
// # File Layout
//
//	offset  size  field
//	0       4     magic 0x47 0x42 0x37 0x1D ("GB7" + 0x1D)
//	4       1     version, must be 0x01
//	5       1     flags, bit 0 = has mask
//	6       2     width, big-endian
//	8       2     height, big-endian
//	10      2     reserved
//	12      w*h   pixel records, row-major, one byte each
//
// Each pixel record holds a mask bit (bit 7) and a 7-bit gray sample
// (bits 6-0). The sample is used verbatim as R, G and B, so decoded gray
// values never exceed 127. That is how existing files are meant to render
// and is kept for compatibility.
//
// Importing this package registers the format with the image package under
// the name "graybit7".
package graybit7

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// Header constants.
const (
	Magic      = "GB7\x1d"
	Version    = 0x01
	HeaderSize = 12

	flagMask = 0x01
	maskBit  = 0x80
	grayBits = 0x7f
)

// Metadata describes a decoded GrayBit-7 file.
type Metadata struct {
	Width   int   `json:"width"`
	Height  int   `json:"height"`
	Version uint8 `json:"version"`
	HasMask bool  `json:"has_mask"`

	// ColorDepth is the average number of file bits per pixel, header
	// included: round(len(file)*8 / (width*height)). It is a diagnostic, not
	// a field stored in the file.
	ColorDepth int `json:"color_depth"`
}

func init() {
	image.RegisterFormat("graybit7", Magic, DecodeImage, DecodeConfig)
}

func formatErr(msg string) error {
	return &pixel.FormatError{Format: "graybit7", Msg: msg}
}

// parseHeader validates the fixed 12-byte header. It does not look at the
// pixel records.
func parseHeader(data []byte) (Metadata, error) {
	if len(data) < len(Magic) {
		return Metadata{}, formatErr("truncated header")
	}
	if string(data[:4]) != Magic {
		return Metadata{}, formatErr("bad signature")
	}
	if len(data) < 5 {
		return Metadata{}, formatErr("truncated header")
	}
	if data[4] != Version {
		return Metadata{}, formatErr("unsupported version")
	}
	if len(data) < HeaderSize {
		return Metadata{}, formatErr("truncated header")
	}

	m := Metadata{
		Version: data[4],
		HasMask: data[5]&flagMask != 0,
		Width:   int(binary.BigEndian.Uint16(data[6:8])),
		Height:  int(binary.BigEndian.Uint16(data[8:10])),
	}
	if m.Width == 0 || m.Height == 0 {
		return Metadata{}, formatErr("empty image")
	}
	m.ColorDepth = int(math.Round(float64(len(data)*8) / float64(m.Width*m.Height)))
	return m, nil
}

// DecodeMetadata validates the header of data and returns its metadata
// without decoding pixels. ColorDepth is computed from len(data).
func DecodeMetadata(data []byte) (Metadata, error) {
	return parseHeader(data)
}

// Decode parses a complete GrayBit-7 file into an RGBA buffer.
//
// The signature is checked first, then the version, then the rest of the
// header; each failure is its own *pixel.FormatError ("bad signature",
// "unsupported version", "truncated header", "empty image", "truncated
// pixel data"). Bytes after the last pixel record are ignored but
// still count toward Metadata.ColorDepth.
func Decode(data []byte) (*pixel.Buffer, Metadata, error) {
	m, err := parseHeader(data)
	if err != nil {
		return nil, Metadata{}, err
	}

	count := m.Width * m.Height
	if len(data)-HeaderSize < count {
		return nil, Metadata{}, formatErr("truncated pixel data")
	}

	buf, err := pixel.New(m.Width, m.Height)
	if err != nil {
		return nil, Metadata{}, err
	}

	records := data[HeaderSize : HeaderSize+count]
	for i, rec := range records {
		gray := rec & grayBits
		alpha := uint8(255)
		if m.HasMask && rec&maskBit == 0 {
			alpha = 0
		}
		o := i * pixel.Channels
		buf.Pix[o] = gray
		buf.Pix[o+1] = gray
		buf.Pix[o+2] = gray
		buf.Pix[o+3] = alpha
	}
	return buf, m, nil
}

// DecodeImage reads a GrayBit-7 file from r as an *image.NRGBA.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	buf, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return buf.NRGBA(), nil
}

// DecodeConfig reads only the header from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return image.Config{}, formatErr("truncated header")
		}
		return image.Config{}, err
	}
	m, err := parseHeader(hdr[:])
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: m.Width, Height: m.Height}, nil
}

// Encode serializes b as a GrayBit-7 file.
//
// Each pixel's gray sample is its rounded BT.601 luma, capped at 127 since
// the format stores samples verbatim. With hasMask set, the mask bit is on
// for pixels whose alpha is at least 128. Decoding an encoded buffer that
// was itself produced by Decode gives back the same pixels.
//
// Returns a *pixel.DomainError if b is invalid or larger than 65535 in
// either dimension.
func Encode(b *pixel.Buffer, hasMask bool) ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if b.Width > math.MaxUint16 || b.Height > math.MaxUint16 {
		return nil, pixel.Domainf("graybit7", "dimensions %dx%d exceed 65535", b.Width, b.Height)
	}

	var out bytes.Buffer
	out.Grow(HeaderSize + b.Width*b.Height)

	hdr := make([]byte, HeaderSize)
	copy(hdr, Magic)
	hdr[4] = Version
	if hasMask {
		hdr[5] = flagMask
	}
	binary.BigEndian.PutUint16(hdr[6:8], uint16(b.Width))
	binary.BigEndian.PutUint16(hdr[8:10], uint16(b.Height))
	out.Write(hdr)

	for i := 0; i < len(b.Pix); i += pixel.Channels {
		luma := 0.299*float64(b.Pix[i]) + 0.587*float64(b.Pix[i+1]) + 0.114*float64(b.Pix[i+2])
		rec := pixel.Clamp8(luma)
		if rec > grayBits {
			rec = grayBits
		}
		if hasMask && b.Pix[i+3] >= 128 {
			rec |= maskBit
		}
		out.WriteByte(rec)
	}
	return out.Bytes(), nil
}
