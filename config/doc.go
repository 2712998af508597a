// Package config resolves the settings of a conversion run.
//
// Sources, lowest precedence first:
//
//	built-in defaults
//	YAML file given with -c/--config
//	AS2ORG_LOG_LEVEL, AS2ORG_INPUT_FILE, AS2ORG_OUTPUT_FILE,
//	AS2ORG_DOWNLOAD_DIR, AS2ORG_CHARSET, AS2ORG_JSON_FILE,
//	AS2ORG_SQLITE_FILE, AS2ORG_LEGACY_HEADER
//	command line flags
//
// Example YAML file:
//
//	log_level: info
//	input_file: https://publicdata.caida.org/datasets/as-organizations/20190701.as-org2info.txt.gz
//	output_file: parsed_20190701.as-org2info.txt
//	download_dir: /var/cache/as2org
//	charset: utf-8
package config
