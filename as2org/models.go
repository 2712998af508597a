package as2org

// Organization is one record of the organization section.
type Organization struct {
	ID      string
	Name    string
	Country string
}

// ASNMapping is one record of the AS section.
type ASNMapping struct {
	ASN          string
	OrgID        string
	FriendlyName string
}

// OrganizationMap is keyed by org_id.
type OrganizationMap map[string]Organization

// ASNMap is keyed by ASN and iterates in first-insertion order.
// Re-inserting a key replaces its value but keeps its position.
type ASNMap struct {
	order   []string
	entries map[string]ASNMapping
}

func NewASNMap() *ASNMap {
	return &ASNMap{entries: make(map[string]ASNMapping)}
}

func (m *ASNMap) Set(mapping ASNMapping) {
	if _, exists := m.entries[mapping.ASN]; !exists {
		m.order = append(m.order, mapping.ASN)
	}
	m.entries[mapping.ASN] = mapping
}

func (m *ASNMap) Get(asn string) (ASNMapping, bool) {
	mapping, ok := m.entries[asn]
	return mapping, ok
}

func (m *ASNMap) Len() int {
	return len(m.order)
}

// Each calls fn for every mapping in insertion order and stops at the
// first error.
func (m *ASNMap) Each(fn func(ASNMapping) error) error {
	for _, asn := range m.order {
		if err := fn(m.entries[asn]); err != nil {
			return err
		}
	}
	return nil
}

// OrganizationGroup collects every ASN whose organization carries Name.
// The four lists are kept in lock-step by Add.
type OrganizationGroup struct {
	Name          string   `json:"org_name"`
	ASNs          []string `json:"asns"`
	OrgIDs        []string `json:"org_ids"`
	FriendlyNames []string `json:"friendly_names"`
	Countries     []string `json:"locations"`
}

func (g *OrganizationGroup) Add(orgID, country, asn, friendlyName string) {
	g.OrgIDs = append(g.OrgIDs, orgID)
	g.Countries = append(g.Countries, country)
	g.ASNs = append(g.ASNs, asn)
	g.FriendlyNames = append(g.FriendlyNames, friendlyName)
}

func (g *OrganizationGroup) Len() int {
	return len(g.ASNs)
}
