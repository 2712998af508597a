package as2org

import (
	"errors"
	"fmt"
)

// Error categories. Callers match them with errors.Is.
var (
	ErrConfig    = errors.New("configuration error")
	ErrIO        = errors.New("i/o error")
	ErrParse     = errors.New("parse error")
	ErrReference = errors.New("reference error")
)

// ParseError reports a data line that does not carry enough fields for
// the active section.
type ParseError struct {
	Line    int
	Section Section
	Fields  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s record has %d fields, need at least %d",
		e.Line, e.Section, e.Fields, minFields)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ReferenceError reports an ASN mapping pointing at an unknown org_id.
type ReferenceError struct {
	ASN   string
	OrgID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("asn %q references unknown org_id %q", e.ASN, e.OrgID)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// IOError wraps err so that it matches both ErrIO and err.
func IOError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrIO, err)
}
