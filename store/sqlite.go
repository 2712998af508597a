// Package store exports organization groups to a SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/TDiblik/as2org/as2org"
)

const schema = `
DROP TABLE IF EXISTS org_groups;
DROP TABLE IF EXISTS asn_orgs;
CREATE TABLE org_groups (
	org_name       TEXT PRIMARY KEY,
	asns           TEXT NOT NULL,
	org_ids        TEXT NOT NULL,
	friendly_names TEXT NOT NULL,
	locations      TEXT NOT NULL
);
CREATE TABLE asn_orgs (
	position      INTEGER NOT NULL,
	asn           TEXT NOT NULL,
	org_id        TEXT NOT NULL,
	org_name      TEXT NOT NULL,
	friendly_name TEXT NOT NULL,
	location      TEXT NOT NULL
);
CREATE INDEX asn_orgs_asn ON asn_orgs (asn);
`

// Store wraps a SQLite database holding one conversion result.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, as2org.IOError("unable to open database "+path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, as2org.IOError("unable to open database "+path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the database contents with groups in one transaction.
func (s *Store) Save(groups []*as2org.OrganizationGroup) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return as2org.IOError("unable to begin transaction", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(schema); err != nil {
		return as2org.IOError("unable to create schema", err)
	}

	groupStmt, err := tx.Prepare(`INSERT INTO org_groups (org_name, asns, org_ids, friendly_names, locations) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return as2org.IOError("unable to prepare statement", err)
	}
	defer groupStmt.Close()

	asnStmt, err := tx.Prepare(`INSERT INTO asn_orgs (position, asn, org_id, org_name, friendly_name, location) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return as2org.IOError("unable to prepare statement", err)
	}
	defer asnStmt.Close()

	for _, group := range groups {
		row := as2org.Row(group)
		if _, err = groupStmt.Exec(row[0], row[1], row[2], row[3], row[4]); err != nil {
			return as2org.IOError(fmt.Sprint("unable to insert group ", group.Name), err)
		}
		for i := range group.ASNs {
			_, err = asnStmt.Exec(i, group.ASNs[i], group.OrgIDs[i], group.Name, group.FriendlyNames[i], group.Countries[i])
			if err != nil {
				return as2org.IOError(fmt.Sprint("unable to insert asn ", group.ASNs[i]), err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return as2org.IOError("unable to commit", err)
	}
	return nil
}

// Groups reads the stored groups back, sorted by name.
func (s *Store) Groups() ([]*as2org.OrganizationGroup, error) {
	rows, err := s.db.Query(`SELECT org_name, asns, org_ids, friendly_names, locations FROM org_groups ORDER BY org_name`)
	if err != nil {
		return nil, as2org.IOError("unable to query groups", err)
	}
	defer rows.Close()

	var groups []*as2org.OrganizationGroup
	for rows.Next() {
		var name, asns, orgIDs, friendlyNames, locations string
		if err := rows.Scan(&name, &asns, &orgIDs, &friendlyNames, &locations); err != nil {
			return nil, as2org.IOError("unable to scan group", err)
		}
		groups = append(groups, &as2org.OrganizationGroup{
			Name:          name,
			ASNs:          strings.Split(asns, as2org.ListSeparator),
			OrgIDs:        strings.Split(orgIDs, as2org.ListSeparator),
			FriendlyNames: strings.Split(friendlyNames, as2org.ListSeparator),
			Countries:     strings.Split(locations, as2org.ListSeparator),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, as2org.IOError("unable to read groups", err)
	}
	return groups, nil
}

// OrgNameForASN returns the organization name an ASN was grouped under.
func (s *Store) OrgNameForASN(asn string) (string, error) {
	var name string
	err := s.db.QueryRow(`SELECT org_name FROM asn_orgs WHERE asn = ? ORDER BY rowid LIMIT 1`, asn).Scan(&name)
	if err != nil {
		return "", err
	}
	return name, nil
}

// WriteFile saves groups into a SQLite database at path.
func WriteFile(path string, groups []*as2org.OrganizationGroup) error {
	s, err := Open(path)
	if err != nil {
		return err
	}
	if err := s.Save(groups); err != nil {
		s.Close()
		return err
	}
	if err := s.Close(); err != nil {
		return as2org.IOError("unable to close database "+path, err)
	}
	return nil
}
