package colorspace

// Luminance returns the WCAG relative luminance of c, in [0,1].
func Luminance(c RGB) float64 {
	return 0.2126*SRGBToLinear(c.R) + 0.7152*SRGBToLinear(c.G) + 0.0722*SRGBToLinear(c.B)
}

// Contrast returns the WCAG contrast ratio between two colors, in [1,21].
// The result does not depend on argument order.
func Contrast(a, b RGB) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// WCAG 2.x minimum ratios for normal-size text. Large text only needs
// LargeTextRatio for AA.
const (
	AAARatio       = 7.0
	AARatio        = 4.5
	LargeTextRatio = 3.0
)

// ContrastLevel grades a contrast ratio against the WCAG thresholds.
//
// Returns "AAA", "AA", "AA Large", or "Fail".
func ContrastLevel(ratio float64) string {
	switch {
	case ratio >= AAARatio:
		return "AAA"
	case ratio >= AARatio:
		return "AA"
	case ratio >= LargeTextRatio:
		return "AA Large"
	default:
		return "Fail"
	}
}

// ContrastReport is the WCAG comparison of a foreground and background color.
type ContrastReport struct {
	Ratio               float64 `json:"ratio"`
	Level               string  `json:"level"`
	ForegroundHex       string  `json:"foreground_hex"`
	BackgroundHex       string  `json:"background_hex"`
	ForegroundLuminance float64 `json:"foreground_luminance"`
	BackgroundLuminance float64 `json:"background_luminance"`
	PassesAA            bool    `json:"passes_aa"`
	PassesAAA           bool    `json:"passes_aaa"`
	PassesAALargeText   bool    `json:"passes_aa_large_text"`
}

// CompareContrast grades fg against bg.
func CompareContrast(fg, bg RGB) ContrastReport {
	ratio := Contrast(fg, bg)
	return ContrastReport{
		Ratio:               ratio,
		Level:               ContrastLevel(ratio),
		ForegroundHex:       fg.Hex(),
		BackgroundHex:       bg.Hex(),
		ForegroundLuminance: Luminance(fg),
		BackgroundLuminance: Luminance(bg),
		PassesAA:            ratio >= AARatio,
		PassesAAA:           ratio >= AAARatio,
		PassesAALargeText:   ratio >= LargeTextRatio,
	}
}
