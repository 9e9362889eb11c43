// Package colorspace converts 8-bit sRGB colors into linear RGB, CIE XYZ,
// CIE Lab, CIE LCH and OkLCH, and computes WCAG luminance and contrast.
//
// All conversions are pure functions of their arguments. Because RGB holds
// uint8 channels, the conversions themselves cannot receive out-of-range
// input; the constructors that accept untyped values (NewRGB, ParseHex)
// reject anything outside [0,255] with a *pixel.DomainError.
//
// # Reference White
//
// XYZ values use the D65 illuminant scaled so that Y = 100, with reference
// white (95.047, 100.0, 108.883). Lab and LCH are relative to that white.
//
// # Ranges
//
//   - Linear RGB: 0-1
//   - XYZ: X 0-95.05, Y 0-100, Z 0-108.88 for sRGB inputs
//   - Lab: L 0-100
//   - LCH / OkLCH hue: 0 <= H < 360 degrees
//   - OkLCH L and C are multiplied by 100
package colorspace
