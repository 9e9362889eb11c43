// Package server implements the MCP (Model Context Protocol) server for the
// pixel transform tools.
//
// This package provides a JSON-RPC 2.0 server that exposes color conversion,
// convolution, tone curves, resampling and GrayBit-7 decoding through the
// MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color at pixel in every supported color space
//   - image_sample_colors_multi: Sample multiple points
//   - color_convert: Convert a color to XYZ, CIELAB, LCH and OkLCH
//   - color_contrast: WCAG contrast ratio and conformance level
//
// Pixel Transforms:
//   - image_convolve: 3x3 kernel filter (custom weights or preset)
//   - image_gradation: Two-point tone curve
//   - image_resize: Nearest, bilinear or Lanczos resampling
//   - graybit7_decode: Decode a GrayBit-7 file
//
// Transform tools return the result as base64-encoded PNG.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "graybit7: bad signature"
//
// # Logging
//
// Every tools/call is logged with a random call_id and the tool name.
// Logs never go to stdout.
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger), server.WithVersion(version))
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
package server
