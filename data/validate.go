package data

import (
	"fmt"
	"strings"
)

// validateShape confirms the trailing axis of a value block matches the
// model's observed dimension count. When checkColumns is set, every expected
// observed-state name must appear among the container's column names.
func validateShape(cols, nObs int, checkColumns bool, obsCoords, colNames []string) error {
	if cols != nObs {
		return fmt.Errorf(
			"expected %d columns, found %d: %w", nObs, cols, ErrShapeMismatch)
	}

	if checkColumns {
		present := make(map[string]bool, len(colNames))
		for _, name := range colNames {
			present[name] = true
		}
		var missing []string
		for _, name := range obsCoords {
			if !present[name] {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf(
				"the following observed states were not found: %s: %w",
				strings.Join(missing, ", "), ErrMissingColumns)
		}
	}
	return nil
}
