package entity

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidBloodGroup = errors.New("invalid blood group")

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

var BloodGroups = []BloodGroup{
	BloodGroupAPos, BloodGroupANeg,
	BloodGroupBPos, BloodGroupBNeg,
	BloodGroupABPos, BloodGroupABNeg,
	BloodGroupOPos, BloodGroupONeg,
}

func ParseBloodGroup(s string) (BloodGroup, error) {
	g := BloodGroup(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBloodGroup, s)
	}
	return g, nil
}

func (g BloodGroup) Valid() bool {
	for _, known := range BloodGroups {
		if g == known {
			return true
		}
	}
	return false
}

func (g BloodGroup) String() string {
	return string(g)
}

// BloodGroupSet is persisted as a comma separated varchar.
type BloodGroupSet []BloodGroup

func (s BloodGroupSet) Contains(g BloodGroup) bool {
	for _, v := range s {
		if v == g {
			return true
		}
	}
	return false
}

func (s BloodGroupSet) Value() (driver.Value, error) {
	parts := make([]string, 0, len(s))
	for _, g := range s {
		parts = append(parts, string(g))
	}
	return strings.Join(parts, ","), nil
}

func (s *BloodGroupSet) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("failed to scan blood group set: %v", value)
	}

	set := BloodGroupSet{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		set = append(set, BloodGroup(part))
	}
	*s = set
	return nil
}
