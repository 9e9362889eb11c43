package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/pixel-tools-mcp/internal/colorspace"
	"github.com/ironsheep/pixel-tools-mcp/internal/convolution"
	"github.com/ironsheep/pixel-tools-mcp/internal/gradation"
	"github.com/ironsheep/pixel-tools-mcp/internal/graybit7"
	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/logging"
	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
	"github.com/ironsheep/pixel-tools-mcp/internal/resample"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_convolve").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// Each call is logged under a fresh call_id.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	ctx = logging.AppendCtx(ctx,
		slog.String("call_id", uuid.NewString()),
		slog.String("tool", params.Name),
	)
	log := logging.With(ctx, s.logger)

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Warn("tool call failed", "error", err, "elapsed", time.Since(start))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	log.Info("tool call", "elapsed", time.Since(start))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate transform
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "color_convert":
		return s.handleColorConvert(args)
	case "color_contrast":
		return s.handleColorContrast(args)

	// Pixel Transforms
	case "image_convolve":
		return s.handleImageConvolve(args)
	case "image_gradation":
		return s.handleImageGradation(args)
	case "image_resize":
		return s.handleImageResize(args)
	case "graybit7_decode":
		return s.handleGrayBit7Decode(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments, treating a missing object as empty.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img.Buffer, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string                 `json:"path"`
	Points []imaging.LabeledPoint `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColorsMulti(img.Buffer, a.Points)
}

// colorArg is a color given either as hex or as r, g, b integers. The
// integers are decoded as int so out-of-range values reach NewRGB and are
// rejected there.
type colorArg struct {
	Hex string `json:"hex"`
	R   *int   `json:"r"`
	G   *int   `json:"g"`
	B   *int   `json:"b"`
}

func (c *colorArg) resolve(name string) (colorspace.RGB, error) {
	if c == nil {
		return colorspace.RGB{}, pixel.Domainf("colorspace", "%s color is required", name)
	}
	if c.Hex != "" {
		return colorspace.ParseHex(c.Hex)
	}
	if c.R == nil || c.G == nil || c.B == nil {
		return colorspace.RGB{}, pixel.Domainf("colorspace", "%s color needs hex or all of r, g, b", name)
	}
	return colorspace.NewRGB(*c.R, *c.G, *c.B)
}

type colorConvertArgs struct {
	Color *colorArg `json:"color"`
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a colorConvertArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	c, err := a.Color.resolve("input")
	if err != nil {
		return nil, err
	}
	return colorspace.Describe(c), nil
}

type colorContrastArgs struct {
	Foreground *colorArg `json:"foreground"`
	Background *colorArg `json:"background"`
}

func (s *Server) handleColorContrast(args json.RawMessage) (interface{}, error) {
	var a colorContrastArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	fg, err := a.Foreground.resolve("foreground")
	if err != nil {
		return nil, err
	}
	bg, err := a.Background.resolve("background")
	if err != nil {
		return nil, err
	}

	return colorspace.CompareContrast(fg, bg), nil
}

// === Pixel Transform Handlers ===

type imageConvolveArgs struct {
	Path      string    `json:"path"`
	Kernel    []float64 `json:"kernel"`
	Preset    string    `json:"preset"`
	Normalize bool      `json:"normalize"`
}

// ConvolveResult is the output of image_convolve.
type ConvolveResult struct {
	Kernel convolution.Kernel `json:"kernel"`
	*imaging.ImageResult
}

func (s *Server) handleImageConvolve(args json.RawMessage) (interface{}, error) {
	var a imageConvolveArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	var k convolution.Kernel
	switch {
	case a.Preset != "":
		p, err := convolution.Preset(a.Preset)
		if err != nil {
			return nil, err
		}
		k = p
	case len(a.Kernel) == len(k):
		copy(k[:], a.Kernel)
	default:
		return nil, pixel.Domainf("convolution", "kernel needs exactly 9 weights or a preset, got %d weights", len(a.Kernel))
	}
	if a.Normalize {
		k = k.Normalized()
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := convolution.Apply(img.Buffer, k)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(out)
	if err != nil {
		return nil, err
	}
	return &ConvolveResult{Kernel: k, ImageResult: encoded}, nil
}

type imageGradationArgs struct {
	Path string `json:"path"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
}

// GradationResult is the output of image_gradation.
type GradationResult struct {
	Curve string        `json:"curve"`
	LUT   gradation.LUT `json:"lut"`
	*imaging.ImageResult
}

func (s *Server) handleImageGradation(args json.RawMessage) (interface{}, error) {
	var a imageGradationArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	curve := gradation.Curve{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y2}
	lut, err := gradation.GenerateLUT(curve)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	out, err := gradation.Apply(img.Buffer, lut)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(out)
	if err != nil {
		return nil, err
	}
	return &GradationResult{Curve: curve.String(), LUT: lut, ImageResult: encoded}, nil
}

type imageResizeArgs struct {
	Path   string  `json:"path"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
	Method string  `json:"method"`
}

// ResizeResult is the output of image_resize.
type ResizeResult struct {
	Method       string `json:"method"`
	SourceWidth  int    `json:"source_width"`
	SourceHeight int    `json:"source_height"`
	*imaging.ImageResult
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Method == "" {
		a.Method = "bilinear"
	}
	method, err := resample.ParseMethod(a.Method)
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var out *pixel.Buffer
	if a.Width == 0 && a.Height == 0 && a.Scale != 0 {
		out, err = resample.Scale(img.Buffer, a.Scale, method)
	} else {
		out, err = resample.Resize(img.Buffer, a.Width, a.Height, method)
	}
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodePNG(out)
	if err != nil {
		return nil, err
	}
	return &ResizeResult{
		Method:       method.String(),
		SourceWidth:  img.Buffer.Width,
		SourceHeight: img.Buffer.Height,
		ImageResult:  encoded,
	}, nil
}

type grayBit7DecodeArgs struct {
	Path string `json:"path"`
}

// GrayBit7Result is the output of graybit7_decode.
type GrayBit7Result struct {
	Metadata graybit7.Metadata `json:"metadata"`
	*imaging.ImageResult
}

// handleGrayBit7Decode reads the file directly rather than through the
// cache so that a non-GrayBit-7 file reports "bad signature".
func (s *Server) handleGrayBit7Decode(args json.RawMessage) (interface{}, error) {
	var a grayBit7DecodeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	buf, meta, err := graybit7.Decode(data)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(buf)
	if err != nil {
		return nil, err
	}
	return &GrayBit7Result{Metadata: meta, ImageResult: encoded}, nil
}
