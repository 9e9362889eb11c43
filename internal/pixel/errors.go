package pixel

import "fmt"

// DomainError reports a caller-supplied numeric or geometric value outside the
// domain an operation accepts, such as a channel value above 255, a target
// dimension of zero, or a degenerate tone curve.
//
// Op names the operation that rejected the value (e.g. "resample",
// "gradation").
type DomainError struct {
	Op  string
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Domainf builds a *DomainError with a formatted message.
func Domainf(op, format string, args ...any) error {
	return &DomainError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// FormatError reports malformed or unsupported binary input. Format is the
// name of the codec that rejected the data (e.g. "graybit7").
type FormatError struct {
	Format string
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Format, e.Msg)
}
