// Package pixel defines the in-memory RGBA pixel buffer shared by the
// transform packages, together with the two error kinds they report.
//
// # Buffer Layout
//
// A Buffer is a row-major sequence of 8-bit RGBA quadruplets:
//
//	offset(x, y) = (y*Width + x) * 4
//	Pix[offset+0] = R, Pix[offset+1] = G, Pix[offset+2] = B, Pix[offset+3] = A
//
// Channels are non-premultiplied, matching image.NRGBA. The length invariant
// len(Pix) == Width*Height*4 is checked by every constructor and by Validate.
//
// # Ownership
//
// Transforms never mutate their input. Each one allocates and returns a new
// Buffer, so a buffer can be handed to several transforms concurrently as long
// as nobody writes to it.
//
// # Error Kinds
//
//   - *DomainError: a caller-supplied value is outside the accepted domain
//     (bad dimensions, out-of-range channel, degenerate curve).
//   - *FormatError: binary input is malformed or uses an unsupported version.
//
// Use errors.As to branch on the kind.
package pixel
