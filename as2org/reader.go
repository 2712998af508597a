package as2org

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RowReader reads rows written by RowWriter.
type RowReader struct {
	r *bufio.Reader
}

func NewRowReader(r io.Reader) *RowReader {
	return &RowReader{r: bufio.NewReader(r)}
}

// Read returns the next row, or io.EOF when the input is exhausted.
func (rr *RowReader) Read() ([]string, error) {
	var (
		fields  []string
		field   strings.Builder
		started bool
		quoted  bool
		closed  bool
	)
	for {
		b, err := rr.r.ReadByte()
		if errors.Is(err, io.EOF) {
			if !started {
				return nil, io.EOF
			}
			if quoted {
				return nil, fmt.Errorf("%w: unterminated quoted field", ErrParse)
			}
			return append(fields, field.String()), nil
		}
		if err != nil {
			return nil, err
		}
		started = true

		if quoted {
			if b != Quote {
				field.WriteByte(b)
				continue
			}
			next, err := rr.r.ReadByte()
			if err == nil && next == Quote {
				field.WriteByte(Quote)
				continue
			}
			if err == nil {
				_ = rr.r.UnreadByte()
			}
			quoted, closed = false, true
			continue
		}

		switch {
		case b == Quote && field.Len() == 0 && !closed:
			quoted = true
		case b == Delimiter:
			fields = append(fields, field.String())
			field.Reset()
			closed = false
		case b == '\n':
			return append(fields, field.String()), nil
		default:
			field.WriteByte(b)
		}
	}
}

func (rr *RowReader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := rr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}
