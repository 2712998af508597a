// Package as2org parses CAIDA AS-to-Organization datasets and flattens
// them into one record per organization name.
//
// The dataset is a single pipe-delimited stream holding two sections:
//
//	# format:org_id|changed|name|country|source
//	LVLT-ARIN|20120130|Level 3 Communications, Inc.|US|ARIN
//	# format:aut|changed|aut_name|org_id|opaque_id|source
//	1|20120224|LVLT-1|LVLT-ARIN|e5e3b9c13678dfc483fb1f819d70883c_ARIN|ARIN
//
// Output rows are '#'-delimited with '|' as quote character:
//
//	org_name#asns#org_ids#friendly_names#locations
//	Level 3 Communications, Inc.#1#LVLT-ARIN#LVLT-1#US
package as2org
