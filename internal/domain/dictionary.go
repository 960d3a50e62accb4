package domain

import (
	"time"

	"github.com/google/uuid"
)

// DictionaryRow is the shared shape of every configurable lookup table.
// Row ids are caller-assigned, unlike the generated ids used elsewhere.
type DictionaryRow struct {
	ID               int
	DisplayName      string
	Description      string
	IsActive         bool
	IsSystemValue    bool
	CreateDate       time.Time
	CreatedByID      uuid.UUID
	LastModifiedByID *uuid.UUID
	LastModifiedDate *time.Time
}

// DictionaryRowUpdate carries a partial update; nil fields stay untouched.
type DictionaryRowUpdate struct {
	DisplayName *string
	Description *string
	IsActive    *bool
}

// DictionaryDescriptor identifies one concrete lookup table.
type DictionaryDescriptor struct {
	Name  string
	Table string
}

// dictionaries is the static name-to-table mapping. Read-only after init.
var dictionaries = map[string]DictionaryDescriptor{
	"application_roles":  {Name: "application_roles", Table: "dicts.application_roles"},
	"specialists_roles":  {Name: "specialists_roles", Table: "dicts.specialists_roles"},
	"examination_status": {Name: "examination_status", Table: "dicts.examination_status"},
	"drawn_spots_types":  {Name: "drawn_spots_types", Table: "dicts.drawn_spots_types"},
}

// ResolveDictionary maps a dictionary name to its descriptor. Unknown names
// return false and must be rejected before any persistence access.
func ResolveDictionary(name string) (DictionaryDescriptor, bool) {
	descriptor, ok := dictionaries[name]
	return descriptor, ok
}

// DictionaryNames lists the registered dictionary names.
func DictionaryNames() []string {
	names := make([]string, 0, len(dictionaries))
	for name := range dictionaries {
		names = append(names, name)
	}
	return names
}
