package server

import (
	"github.com/ironsheep/pixel-tools-mcp/internal/convolution"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema for the image path argument shared by every
// image tool.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file (PNG, JPEG, GIF, BMP, TIFF, WebP or GrayBit-7)",
	}
}

func integerProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// colorProperty describes a color given as hex or as r, g, b integers.
func colorProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description + ". Either hex or all of r, g, b.",
		"properties": map[string]interface{}{
			"hex": map[string]interface{}{
				"type":        "string",
				"description": "Hex color \"#RRGGBB\" or \"#RGB\"",
			},
			"r": integerProperty("Red channel 0-255"),
			"g": integerProperty("Green channel 0-255"),
			"b": integerProperty("Blue channel 0-255"),
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and, for GrayBit-7 files, the header metadata.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel as RGBA, hex, HSL, linear RGB, XYZ, CIELAB, LCH, OkLCH and relative luminance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x":    integerProperty("X coordinate (0-based)"),
					"y":    integerProperty("Y coordinate (0-based)"),
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Sample colors at several labeled points in one call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     integerProperty("X coordinate (0-based)"),
								"y":     integerProperty("Y coordinate (0-based)"),
								"label": map[string]interface{}{"type": "string", "description": "Optional label"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "color_convert",
			Description: "Convert an sRGB color to linear RGB, XYZ (D65), CIELAB, LCH and OkLCH, and report its WCAG relative luminance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": colorProperty("Color to convert"),
				},
				"required": []string{"color"},
			},
		},
		{
			Name:        "color_contrast",
			Description: "Compute the WCAG contrast ratio between two colors and the conformance level it reaches for normal text.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"foreground": colorProperty("Foreground (text) color"),
					"background": colorProperty("Background color"),
				},
				"required": []string{"foreground", "background"},
			},
		},

		// Pixel Transforms
		{
			Name:        "image_convolve",
			Description: "Apply a 3x3 convolution kernel to the RGB channels of an image and return the result as base64-encoded PNG. Alpha is preserved and image borders are clamped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"kernel": map[string]interface{}{
						"type":        "array",
						"description": "Nine kernel weights in row-major order. Ignored when preset is set.",
						"items":       map[string]interface{}{"type": "number"},
						"minItems":    9,
						"maxItems":    9,
					},
					"preset": map[string]interface{}{
						"type":        "string",
						"description": "Named kernel",
						"enum":        convolution.Presets(),
					},
					"normalize": map[string]interface{}{
						"type":        "boolean",
						"description": "Divide the weights by their sum (skipped when the sum is zero). Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_gradation",
			Description: "Remap the RGB channels through a two-point tone curve: inputs below x1 map to y1, above x2 to y2, linear in between. Returns the lookup table and the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1":   integerProperty("First control point input (0-255)"),
					"y1":   integerProperty("First control point output (0-255)"),
					"x2":   integerProperty("Second control point input (0-255), greater than x1"),
					"y2":   integerProperty("Second control point output (0-255)"),
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_resize",
			Description: "Resize an image to explicit dimensions or by a scale factor and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"width":  integerProperty("Target width in pixels"),
					"height": integerProperty("Target height in pixels"),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Scale factor, used when width and height are omitted",
					},
					"method": map[string]interface{}{
						"type":        "string",
						"description": "Interpolation method. Default bilinear",
						"enum":        []string{"nearest", "bilinear", "lanczos"},
						"default":     "bilinear",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "graybit7_decode",
			Description: "Decode a GrayBit-7 file and return its header metadata, bits-per-pixel diagnostic and pixels as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the GrayBit-7 file",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
