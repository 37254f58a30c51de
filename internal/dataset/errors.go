package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// MissingColumnsError is a data-shape error: the table lacks columns the
// loader needs. It asks for a fix to the data source, unlike an empty result.
type MissingColumnsError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s table is missing required columns: %s", e.Table, strings.Join(e.Columns, ", "))
}

// ErrEmptyTable is returned when a table has no header row.
var ErrEmptyTable = errors.New("table has no header row")

// IsDataShapeError reports whether err stems from a malformed table layout.
func IsDataShapeError(err error) bool {
	var missing *MissingColumnsError
	return errors.As(err, &missing) || errors.Is(err, ErrEmptyTable)
}
