package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	RoleAdmin     = "ADMIN"
	RoleCollector = "COLLECTOR"
)

// RoleSet is the set of role labels attached to a user. It is persisted and
// serialized as a comma-delimited string ("ADMIN,COLLECTOR") to stay
// compatible with the existing wire and storage format.
type RoleSet []string

func ParseRoleSet(s string) RoleSet {
	var roles RoleSet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !roles.Has(part) {
			roles = append(roles, part)
		}
	}
	return roles
}

func (r RoleSet) Has(role string) bool {
	for _, have := range r {
		if have == role {
			return true
		}
	}
	return false
}

func (r RoleSet) String() string {
	return strings.Join(r, ",")
}

func (r RoleSet) Value() (driver.Value, error) {
	return r.String(), nil
}

func (r *RoleSet) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = nil
	case string:
		*r = ParseRoleSet(v)
	case []byte:
		*r = ParseRoleSet(string(v))
	default:
		return fmt.Errorf("cannot scan %T into RoleSet", src)
	}
	return nil
}

func (r RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *RoleSet) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRoleSet(s)
	return nil
}
