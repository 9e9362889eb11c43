package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/pixel-tools-mcp/internal/graybit7"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// LoadedImage is a decoded image file held by the cache.
type LoadedImage struct {
	// Buffer holds the pixels as non-premultiplied RGBA.
	Buffer *pixel.Buffer

	// Source is the image as returned by the format decoder.
	Source image.Image

	// Format is the decoder name reported by image.Decode: "png", "jpeg",
	// "gif", "bmp", "tiff", "webp" or "graybit7".
	Format string

	// GrayBit7 is set only for GrayBit-7 files.
	GrayBit7 *graybit7.Metadata

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64
}

// ImageCache provides thread-safe caching of decoded images to avoid redundant
// disk reads and decodes.
//
// Entries are keyed by the exact path string passed to Load and are never
// mutated after insertion, so callers may share them freely. Transforms
// always produce new buffers.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/scan.gb7")
//	if err != nil {
//	    return err
//	}
//	out, err := convolution.Apply(img.Buffer, convolution.Sharpen)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*LoadedImage
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*LoadedImage),
	}
}

// Load retrieves an image from the cache or reads and decodes it from disk.
//
// Parameters:
//   - path: Path to a PNG, JPEG, GIF, BMP, TIFF, WebP or GrayBit-7 file.
//     The format is detected from the file contents, not the extension.
//
// Returns:
//   - *LoadedImage: The decoded image and its metadata.
//   - error: Non-nil if the file cannot be read or decoded. GrayBit-7 format
//     violations wrap a *pixel.FormatError.
func (c *ImageCache) Load(path string) (*LoadedImage, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	img.FileSizeBytes = int64(len(data))

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Decode decodes an in-memory image file. GrayBit-7 data goes through
// graybit7.Decode so its metadata is kept; everything else goes through
// image.Decode.
func Decode(data []byte) (*LoadedImage, error) {
	if bytes.HasPrefix(data, []byte(graybit7.Magic)) {
		buf, meta, err := graybit7.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		return &LoadedImage{
			Buffer:   buf,
			Source:   buf.NRGBA(),
			Format:   "graybit7",
			GrayBit7: &meta,
		}, nil
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	buf, err := pixel.FromImage(src)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return &LoadedImage{Buffer: buf, Source: src, Format: format}, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*LoadedImage)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that recognised the file contents.
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "7-bit" (GrayBit-7),
	// "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image carries transparency information.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// GrayBit7 holds the header fields and bits-per-pixel diagnostic of a
	// GrayBit-7 file.
	GrayBit7 *graybit7.Metadata `json:"graybit7,omitempty"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// # Color Depth Detection
//
// Color depth is determined by the decoded image type:
//   - GrayBit-7 files -> "7-bit"
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	info := &ImageInfo{
		Width:         img.Buffer.Width,
		Height:        img.Buffer.Height,
		Format:        img.Format,
		ColorDepth:    "8-bit",
		FileSizeBytes: img.FileSizeBytes,
		GrayBit7:      img.GrayBit7,
	}

	if img.GrayBit7 != nil {
		info.ColorDepth = "7-bit"
		info.HasAlpha = img.GrayBit7.HasMask
		return info, nil
	}

	switch img.Source.(type) {
	case *image.RGBA, *image.NRGBA, *image.Paletted:
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	case *image.Gray16:
		info.ColorDepth = "16-bit"
	}
	return info, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{
		Width:  img.Buffer.Width,
		Height: img.Buffer.Height,
	}, nil
}
