package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// IDList stores an ordered, duplicate-free list of entity ids as a JSON
// column. Order is insertion order; set semantics are enforced by the
// stores, not the column type.
type IDList []string

// Contains reports whether id is present in the list.
func (l IDList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with id removed.
func (l IDList) Without(id string) IDList {
	out := make(IDList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Value implements the driver.Valuer interface
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		l = IDList{}
	}
	return json.Marshal([]string(l))
}

// Scan implements the sql.Scanner interface
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = IDList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("IDList: unsupported scan type %T", value)
	}
	if len(data) == 0 {
		*l = IDList{}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}

// GormDataType returns the general data type for migration
func (IDList) GormDataType() string {
	return "json"
}

// GormDBDataType ensures the correct data type is used for each database driver.
// This resolves the issue where MSSQL does not support the 'json' data type.
func (IDList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
