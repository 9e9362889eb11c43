package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools-mcp/internal/graybit7"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// ImageResult contains a transformed image encoded for transport.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes buf as a base64 PNG.
func EncodePNG(buf *pixel.Buffer) (*ImageResult, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := png.Encode(&out, buf.NRGBA()); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       buf.Width,
		Height:      buf.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes buf to path. The format follows the extension: ".gb7" writes
// GrayBit-7 with a mask plane, anything else is handed to imaging.Save
// (png, jpg, gif, tif, bmp).
func Save(buf *pixel.Buffer, path string) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".gb7") {
		data, err := graybit7.Encode(buf, true)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to save image: %w", err)
		}
		return nil
	}

	if err := imaging.Save(buf.NRGBA(), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
