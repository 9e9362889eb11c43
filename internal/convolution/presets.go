package convolution

import (
	"fmt"
	"sort"
	"strings"
)

// Common kernels.
var (
	Identity = Kernel{
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}
	BoxBlur = Kernel{
		1.0 / 9, 1.0 / 9, 1.0 / 9,
		1.0 / 9, 1.0 / 9, 1.0 / 9,
		1.0 / 9, 1.0 / 9, 1.0 / 9,
	}
	GaussianBlur = Kernel{
		1.0 / 16, 2.0 / 16, 1.0 / 16,
		2.0 / 16, 4.0 / 16, 2.0 / 16,
		1.0 / 16, 2.0 / 16, 1.0 / 16,
	}
	Sharpen = Kernel{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	}
	// EdgeDetect is the 8-neighbour Laplacian.
	EdgeDetect = Kernel{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	}
	Emboss = Kernel{
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	}
	SobelX = Kernel{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}
	SobelY = Kernel{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	}
)

var presets = map[string]Kernel{
	"identity": Identity,
	"box_blur": BoxBlur,
	"gaussian": GaussianBlur,
	"sharpen":  Sharpen,
	"edge":     EdgeDetect,
	"emboss":   Emboss,
	"sobel_x":  SobelX,
	"sobel_y":  SobelY,
}

// Preset looks up a named kernel. Names are case-insensitive and "-" may be
// used in place of "_".
func Preset(name string) (Kernel, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	k, ok := presets[key]
	if !ok {
		return Kernel{}, fmt.Errorf("unknown kernel preset: %s", name)
	}
	return k, nil
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
