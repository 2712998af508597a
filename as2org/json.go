package as2org

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSONFile writes the groups as an indented JSON array.
func WriteJSONFile(filename string, groups []*OrganizationGroup) error {
	if groups == nil {
		groups = []*OrganizationGroup{}
	}
	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode groups: %w", err)
	}
	if err := os.WriteFile(filename, data, FilePermissions); err != nil {
		return IOError("unable to write "+filename, err)
	}
	return nil
}
