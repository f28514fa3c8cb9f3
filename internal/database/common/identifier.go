package common

import (
	"fmt"
	"regexp"
)

// validIdentifier guards table/column names that end up interpolated into SQL
// text. Values always travel as bind parameters.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidIdentifier reports whether name is a safe SQL identifier.
func ValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// CheckIdentifiers validates a table name and its column names in one pass.
func CheckIdentifiers(table string, columns []string) error {
	if !ValidIdentifier(table) {
		return fmt.Errorf("invalid table name: %s", table)
	}
	for _, col := range columns {
		if !ValidIdentifier(col) {
			return fmt.Errorf("invalid column name in table %s: %s", table, col)
		}
	}
	return nil
}
