package dto

import (
	"fmt"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// Sort is an ORDER BY on a single column. Field must be a trusted column name.
type Sort struct {
	Field     string
	Direction string
}

// GetOrderClause returns "ORDER BY <field> <dir>", or "" when Field is empty.
// Any direction other than ASC sorts descending.
func (s Sort) GetOrderClause() string {
	if s.Field == "" {
		return ""
	}

	direction := SortDirDesc
	if strings.EqualFold(s.Direction, SortDirAsc) {
		direction = SortDirAsc
	}

	return fmt.Sprintf("ORDER BY %s %s", s.Field, direction)
}
