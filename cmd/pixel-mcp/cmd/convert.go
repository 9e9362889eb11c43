package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/pixel-tools-mcp/internal/convolution"
	"github.com/ironsheep/pixel-tools-mcp/internal/gradation"
	"github.com/ironsheep/pixel-tools-mcp/internal/imaging"
	"github.com/ironsheep/pixel-tools-mcp/internal/logging"
	"github.com/ironsheep/pixel-tools-mcp/internal/resample"
)

// NewConvertCmd applies the pixel transforms to an image file.
func NewConvertCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Filter, tone-map and resize an image file",
		Long: "Read any supported image (including GrayBit-7), apply the requested transforms in the\n" +
			"order kernel, curve, resize, and write the result. The output format follows the\n" +
			"extension of <out>: .png, .jpg, .gif, .tif, .bmp or .gb7.",
		Example: "  pixel-mcp convert scan.gb7 scan.png --kernel sharpen --curve 0,0,127,255\n" +
			"  pixel-mcp convert in.png out.png --kernel 0,-1,0,-1,5,-1,0,-1,0 --resize 640x480 --method lanczos",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kernelSpec, _ := cmd.Flags().GetString("kernel")
			normalize, _ := cmd.Flags().GetBool("normalize")
			curveSpec, _ := cmd.Flags().GetString("curve")
			sizeSpec, _ := cmd.Flags().GetString("resize")
			scale, _ := cmd.Flags().GetFloat64("scale")
			methodName, _ := cmd.Flags().GetString("method")

			method, err := resample.ParseMethod(methodName)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to open image: %w", err)
			}
			img, err := imaging.Decode(data)
			if err != nil {
				return err
			}
			log := logging.With(ctx, slog.Default()).With("in", args[0], "format", img.Format)

			buf := img.Buffer
			if kernelSpec != "" {
				k, err := parseKernel(kernelSpec)
				if err != nil {
					return err
				}
				if normalize {
					k = k.Normalized()
				}
				if buf, err = convolution.Apply(buf, k); err != nil {
					return err
				}
				log.Debug("applied kernel", "kernel", k)
			}

			if curveSpec != "" {
				c, err := parseCurve(curveSpec)
				if err != nil {
					return err
				}
				lut, err := gradation.GenerateLUT(c)
				if err != nil {
					return err
				}
				if buf, err = gradation.Apply(buf, lut); err != nil {
					return err
				}
				log.Debug("applied curve", "curve", c.String())
			}

			switch {
			case sizeSpec != "":
				w, h, err := parseSize(sizeSpec)
				if err != nil {
					return err
				}
				if buf, err = resample.Resize(buf, w, h, method); err != nil {
					return err
				}
			case cmd.Flags().Changed("scale"):
				if buf, err = resample.Scale(buf, scale, method); err != nil {
					return err
				}
			}

			if err := imaging.Save(buf, args[1]); err != nil {
				return err
			}
			log.Info("converted", "out", args[1], "width", buf.Width, "height", buf.Height)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("kernel", "k", "", fmt.Sprintf("Kernel preset (%s) or nine comma-separated weights", strings.Join(convolution.Presets(), ", ")))
	f.Bool("normalize", false, "Divide kernel weights by their sum")
	f.StringP("curve", "c", "", "Tone curve control points x1,y1,x2,y2 (0-255, x1 < x2)")
	f.StringP("resize", "r", "", "Target size WxH")
	f.Float64P("scale", "s", 1, "Scale factor, used when --resize is not given")
	f.StringP("method", "m", "bilinear", "Resampling method (nearest, bilinear, lanczos)")
	return cmd
}

// parseKernel accepts a preset name or nine comma-separated weights.
func parseKernel(s string) (convolution.Kernel, error) {
	if !strings.Contains(s, ",") {
		return convolution.Preset(s)
	}
	var k convolution.Kernel
	parts := strings.Split(s, ",")
	if len(parts) != len(k) {
		return k, fmt.Errorf("kernel needs 9 weights, got %d", len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return k, fmt.Errorf("invalid kernel weight %q: %w", p, err)
		}
		k[i] = v
	}
	return k, nil
}

// parseCurve parses "x1,y1,x2,y2". Range checks are left to GenerateLUT.
func parseCurve(s string) (gradation.Curve, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return gradation.Curve{}, fmt.Errorf("curve needs x1,y1,x2,y2, got %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return gradation.Curve{}, fmt.Errorf("invalid curve value %q: %w", p, err)
		}
		v[i] = n
	}
	return gradation.Curve{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size must be WxH, got %q", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width %q: %w", ws, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height %q: %w", hs, err)
	}
	return w, h, nil
}
