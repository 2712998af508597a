package as2org

import (
	"bufio"
	"errors"
	"io"
	"log"
	"os"
	"strings"
)

const (
	// ASNSectionMarker is the header comment that opens the AS section.
	ASNSectionMarker = " format:aut|changed|"

	commentPrefix  = "#"
	fieldSeparator = "|"
	minFields      = 4
)

// Section is the parser state. The only transition is
// SectionOrganizations -> SectionASNs.
type Section int

const (
	SectionOrganizations Section = iota
	SectionASNs
)

func (s Section) String() string {
	switch s {
	case SectionOrganizations:
		return "organization"
	case SectionASNs:
		return "asn"
	default:
		return "unknown"
	}
}

// Stats counts the lines a Parser has consumed.
type Stats struct {
	Comments      int
	Organizations int
	ASNs          int
}

// Parser turns dataset lines into an OrganizationMap and an ASNMap.
type Parser struct {
	section Section
	line    int
	stats   Stats
	orgs    OrganizationMap
	asns    *ASNMap
	logger  *log.Logger
}

// NewParser returns a parser in the organization section. A nil logger
// discards output.
func NewParser(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Parser{
		section: SectionOrganizations,
		orgs:    make(OrganizationMap),
		asns:    NewASNMap(),
		logger:  logger,
	}
}

func (p *Parser) Section() Section { return p.section }

func (p *Parser) Stats() Stats { return p.stats }

func (p *Parser) Organizations() OrganizationMap { return p.orgs }

func (p *Parser) ASNs() *ASNMap { return p.asns }

// ParseLine consumes one raw line, terminator included if present.
func (p *Parser) ParseLine(line string) error {
	p.line++

	if strings.HasPrefix(line, commentPrefix) {
		p.stats.Comments++
		p.logger.Printf("[DEBUG] Ignoring line %d: %q", p.line, line)
		if strings.Contains(line, ASNSectionMarker) && p.section == SectionOrganizations {
			p.logger.Printf("[DEBUG] Line %d opens the asn section", p.line)
			p.section = SectionASNs
		}
		return nil
	}

	fields := strings.Split(line, fieldSeparator)
	p.logger.Printf("[DEBUG] Fields %q", fields)
	if len(fields) < minFields {
		return &ParseError{Line: p.line, Section: p.section, Fields: len(fields)}
	}

	switch p.section {
	case SectionOrganizations:
		p.stats.Organizations++
		p.orgs[fields[0]] = Organization{ID: fields[0], Name: fields[2], Country: fields[3]}
	case SectionASNs:
		p.stats.ASNs++
		p.asns.Set(ASNMapping{ASN: fields[0], FriendlyName: fields[2], OrgID: fields[3]})
	}
	return nil
}

// Parse reads r to EOF. Read failures are reported as ErrIO, malformed
// lines as ErrParse.
func (p *Parser) Parse(r io.Reader) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if perr := p.ParseLine(line); perr != nil {
				return perr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, ErrIO) {
			return err
		}
		if err != nil {
			return IOError("unable to read dataset", err)
		}
	}
}

// Parse reads a whole dataset from r.
func Parse(r io.Reader, logger *log.Logger) (OrganizationMap, *ASNMap, error) {
	parser := NewParser(logger)
	if err := parser.Parse(r); err != nil {
		return nil, nil, err
	}
	return parser.Organizations(), parser.ASNs(), nil
}

// ParseFile opens filename and parses it. The file is closed on every
// path.
func ParseFile(filename string, logger *log.Logger) (OrganizationMap, *ASNMap, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, IOError("unable to open "+filename, err)
	}
	defer file.Close()

	return Parse(file, logger)
}
