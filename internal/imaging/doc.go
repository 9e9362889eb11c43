// Package imaging connects image files to the pixel transforms.
//
// It loads and caches files, reports their metadata, samples colors and
// encodes transform results for the MCP server and CLI. The transforms
// themselves live in the colorspace, convolution, gradation, graybit7 and
// resample packages and know nothing about files.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Supported Formats
//
// PNG, JPEG and GIF come from the standard library; BMP, TIFF and WebP from
// golang.org/x/image. GrayBit-7 files are detected by signature and keep
// their header metadata.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached buffers are never
// modified; every transform allocates its output.
//
// # Error Handling
//
// Functions return errors for:
//   - Coordinates outside image bounds (*pixel.DomainError)
//   - Malformed GrayBit-7 data (*pixel.FormatError)
//   - File I/O errors during image loading
//   - Encoding errors during image output
//
// # Performance Considerations
//
// Large images may consume significant memory when cached. Use Evict() or
// Clear() to manage memory for long-running processes.
package imaging
