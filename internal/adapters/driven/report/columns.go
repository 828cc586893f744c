package report

import (
	"strconv"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
)

// columns is the five-column header every sink writes, in order.
var columns = []string{"repository", "path", "size", "branch", "raw_url"}

// record flattens a row into its five output cells. A missing size
// becomes an empty cell, and error rows keep their file cells empty.
func record(row domain.Row) []string {
	size := ""
	if row.Size != nil {
		size = strconv.FormatInt(*row.Size, 10)
	}
	return []string{row.Repository, row.Path, size, row.Branch, row.RawURL}
}
