package as2org

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `# name: AS Org
# format:org_id|changed|name|country|source
LVLT-ARIN|20120130|Level 3 Communications, Inc.|US|ARIN
A1|20190101|Acme|US|ARIN
# format:aut|changed|aut_name|org_id|opaque_id|source
1|20120224|LVLT-1|LVLT-ARIN|e5e3b9c13678dfc483fb1f819d70883c_ARIN|ARIN
100|20190101|Acme-1|A1|x_ARIN|ARIN
`

func TestParserSectionTransition(t *testing.T) {
	p := NewParser(nil)
	assert.Equal(t, SectionOrganizations, p.Section())

	require.NoError(t, p.ParseLine("# some header\n"))
	assert.Equal(t, SectionOrganizations, p.Section())

	require.NoError(t, p.ParseLine("#"+ASNSectionMarker+"aut_name|org_id\n"))
	assert.Equal(t, SectionASNs, p.Section())

	// A later organization header does not switch back.
	require.NoError(t, p.ParseLine("# format:org_id|changed|name|country|source\n"))
	assert.Equal(t, SectionASNs, p.Section())
}

func TestParserFieldMapping(t *testing.T) {
	orgs, asns, err := Parse(strings.NewReader(sampleDataset), nil)
	require.NoError(t, err)

	assert.Equal(t, OrganizationMap{
		"LVLT-ARIN": {ID: "LVLT-ARIN", Name: "Level 3 Communications, Inc.", Country: "US"},
		"A1":        {ID: "A1", Name: "Acme", Country: "US"},
	}, orgs)

	require.Equal(t, 2, asns.Len())
	mapping, ok := asns.Get("100")
	require.True(t, ok)
	assert.Equal(t, ASNMapping{ASN: "100", OrgID: "A1", FriendlyName: "Acme-1"}, mapping)
}

func TestParserKeepsRawValues(t *testing.T) {
	input := "# format:aut|changed|\n 7 |x| padded name |ORG|\n"
	p := NewParser(nil)
	require.NoError(t, p.Parse(strings.NewReader(input)))

	mapping, ok := p.ASNs().Get(" 7 ")
	require.True(t, ok)
	assert.Equal(t, " padded name ", mapping.FriendlyName)
	assert.Equal(t, "ORG", mapping.OrgID)
}

func TestParserLastFieldKeepsTerminator(t *testing.T) {
	p := NewParser(nil)
	require.NoError(t, p.ParseLine("A1|x|Acme|US\n"))
	assert.Equal(t, "US\n", p.Organizations()["A1"].Country)
}

func TestParserLastLineWithoutNewline(t *testing.T) {
	orgs, _, err := Parse(strings.NewReader("A1|x|Acme|US|ARIN"), nil)
	require.NoError(t, err)
	assert.Equal(t, "US", orgs["A1"].Country)
}

func TestParserFaults(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		section Section
		fields  int
	}{
		{
			name:    "short organization line",
			input:   "# header\nA1|x|Acme\n",
			line:    2,
			section: SectionOrganizations,
			fields:  3,
		},
		{
			name:    "short asn line",
			input:   "A1|x|Acme|US|ARIN\n# format:aut|changed|\n100|x\n",
			line:    3,
			section: SectionASNs,
			fields:  2,
		},
		{
			name:    "blank line",
			input:   "A1|x|Acme|US|ARIN\n\n",
			line:    2,
			section: SectionOrganizations,
			fields:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tt.input), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
			assert.NotErrorIs(t, err, ErrIO)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.line, parseErr.Line)
			assert.Equal(t, tt.section, parseErr.Section)
			assert.Equal(t, tt.fields, parseErr.Fields)
		})
	}
}

func TestParserDuplicateKeysLastWriteWins(t *testing.T) {
	input := strings.Join([]string{
		"A1|x|Acme|US|ARIN",
		"A1|x|Acme Corp|DE|RIPE",
		"# format:aut|changed|",
		"100|x|first|A1|o|ARIN",
		"200|x|second|A1|o|ARIN",
		"100|x|third|A1|o|ARIN",
		"",
	}, "\n")

	orgs, asns, err := Parse(strings.NewReader(input), nil)
	require.NoError(t, err)
	assert.Equal(t, Organization{ID: "A1", Name: "Acme Corp", Country: "DE"}, orgs["A1"])

	var seen []string
	require.NoError(t, asns.Each(func(m ASNMapping) error {
		seen = append(seen, m.ASN+"="+m.FriendlyName)
		return nil
	}))
	assert.Equal(t, []string{"100=third", "200=second"}, seen)
}

func TestParserStats(t *testing.T) {
	p := NewParser(nil)
	require.NoError(t, p.Parse(strings.NewReader(sampleDataset)))
	assert.Equal(t, Stats{Comments: 3, Organizations: 2, ASNs: 2}, p.Stats())
}

func TestParserLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	p := NewParser(log.New(&buf, "", 0))
	require.NoError(t, p.ParseLine("# comment\n"))
	assert.Contains(t, buf.String(), "[DEBUG] Ignoring line 1")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "as-org2info.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleDataset), FilePermissions))

	orgs, asns, err := ParseFile(path, nil)
	require.NoError(t, err)
	assert.Len(t, orgs, 2)
	assert.Equal(t, 2, asns.Len())
}

func TestParseFileMissing(t *testing.T) {
	_, _, err := ParseFile(filepath.Join(t.TempDir(), "missing.txt"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrParse)
}
