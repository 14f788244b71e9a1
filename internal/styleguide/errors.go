package styleguide

import "fmt"

// Kind classifies a parse failure
type Kind int

const (
	// KindSyntax is malformed input: an unnamed section, a duplicate section
	// in one parent scope, an invalid handler
	KindSyntax Kind = iota + 1
	// KindReference is a reference to a file or section that does not exist
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindReference:
		return "reference error"
	default:
		return "error"
	}
}

// Sentinels for errors.Is
var (
	ErrSyntax    = &Error{Kind: KindSyntax}
	ErrReference = &Error{Kind: KindReference}
)

// Error is a parse failure tied to a source position
type Error struct {
	Kind    Kind
	Message string
	File    string
	Line    int // 1-based, 0 when unknown
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s:%d)", e.Kind, e.Message, e.File, e.Line)
}

// Is matches the kind sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

func syntaxError(file string, tag *Tag, format string, args ...any) *Error {
	return newError(KindSyntax, file, tag, format, args...)
}

func referenceError(file string, tag *Tag, format string, args ...any) *Error {
	return newError(KindReference, file, tag, format, args...)
}

func newError(kind Kind, file string, tag *Tag, format string, args ...any) *Error {
	e := &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		File:    file,
	}
	if tag != nil {
		e.Line = tag.Line + 1
	}
	return e
}
