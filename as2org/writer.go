package as2org

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"strings"
)

const (
	DirPermissions  fs.FileMode = 0755
	FilePermissions fs.FileMode = 0644

	Delimiter     = '#'
	Quote         = '|'
	ListSeparator = "$"
)

var (
	// Header matches the column order rows are written in.
	Header = []string{"org_name", "asns", "org_ids", "friendly_names", "locations"}

	// LegacyHeader is the header older outputs carried. Its last two
	// names are swapped relative to the data.
	LegacyHeader = []string{"org_name", "asns", "org_ids", "locations", "friendly_names"}
)

// RowWriter writes '#'-delimited rows, quoting fields with '|' only when
// they contain the delimiter, the quote or a line break. Quotes inside a
// quoted field are doubled.
type RowWriter struct {
	w *bufio.Writer
}

func NewRowWriter(w io.Writer) *RowWriter {
	return &RowWriter{w: bufio.NewWriter(w)}
}

func (rw *RowWriter) Write(fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if err := rw.w.WriteByte(Delimiter); err != nil {
				return err
			}
		}
		if !needsQuotes(field) {
			if _, err := rw.w.WriteString(field); err != nil {
				return err
			}
			continue
		}
		quote := string(Quote)
		escaped := strings.ReplaceAll(field, quote, quote+quote)
		if _, err := rw.w.WriteString(quote + escaped + quote); err != nil {
			return err
		}
	}
	return rw.w.WriteByte('\n')
}

func (rw *RowWriter) Flush() error {
	return rw.w.Flush()
}

func needsQuotes(field string) bool {
	return strings.ContainsAny(field, string([]rune{Delimiter, Quote, '\n', '\r'}))
}

// Row flattens a group into its output fields.
func Row(g *OrganizationGroup) []string {
	return []string{
		g.Name,
		strings.Join(g.ASNs, ListSeparator),
		strings.Join(g.OrgIDs, ListSeparator),
		strings.Join(g.FriendlyNames, ListSeparator),
		strings.Join(g.Countries, ListSeparator),
	}
}

// WriteGroups writes header followed by one row per group.
func WriteGroups(w io.Writer, groups []*OrganizationGroup, header []string) error {
	rw := NewRowWriter(w)
	if err := rw.Write(header); err != nil {
		return IOError("unable to write header", err)
	}
	for _, group := range groups {
		if err := rw.Write(Row(group)); err != nil {
			return IOError("unable to write row for "+group.Name, err)
		}
	}
	if err := rw.Flush(); err != nil {
		return IOError("unable to flush output", err)
	}
	return nil
}

// WriteFile creates (or truncates) filename and writes the groups to it.
func WriteFile(filename string, groups []*OrganizationGroup, header []string) error {
	file, err := os.Create(filename)
	if err != nil {
		return IOError("unable to create "+filename, err)
	}
	if err := WriteGroups(file, groups, header); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return IOError("unable to close "+filename, err)
	}
	return nil
}
