package as2org

import "sort"

// GroupByName joins asns against orgs and groups the result by
// organization name. Groups are returned sorted by name; within a group
// entries keep ASN encounter order and duplicates are kept.
func GroupByName(orgs OrganizationMap, asns *ASNMap) ([]*OrganizationGroup, error) {
	byName := make(map[string]*OrganizationGroup)
	err := asns.Each(func(mapping ASNMapping) error {
		org, exists := orgs[mapping.OrgID]
		if !exists {
			return &ReferenceError{ASN: mapping.ASN, OrgID: mapping.OrgID}
		}
		group, exists := byName[org.Name]
		if !exists {
			group = &OrganizationGroup{Name: org.Name}
			byName[org.Name] = group
		}
		group.Add(mapping.OrgID, org.Country, mapping.ASN, mapping.FriendlyName)
		return nil
	})
	if err != nil {
		return nil, err
	}

	groups := make([]*OrganizationGroup, 0, len(byName))
	for _, group := range byName {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
	return groups, nil
}
