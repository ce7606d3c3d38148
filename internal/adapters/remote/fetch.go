package remote

import (
	"context"
	"log/slog"

	"coachdesk/internal/domain/row"
)

const (
	// PageSize is the fixed page size for ranged queries.
	PageSize = 1000

	// MaxPages bounds a single fetch at 50 pages (50,000 rows). Hitting
	// the cap truncates the result with a warning; it is not an error.
	MaxPages = 50
)

// FetchAllRows retrieves all rows of one logical table, issuing ranged
// queries strictly sequentially until a page comes back short or empty.
// PRE: q.Table is set; q.Offset and q.Limit are ignored
// POST: Pages are concatenated in arrival order; any query failure aborts
// the fetch and propagates the original error object unchanged
// INVARIANT: At most MaxPages page requests are issued
func FetchAllRows(ctx context.Context, src RowSource, q Query, silent bool) ([]row.Row, error) {
	var all []row.Row
	for page := 0; ; page++ {
		if page >= MaxPages {
			slog.Warn("fetch_page_cap", "table", q.Table, "pages", MaxPages, "rows", len(all))
			break
		}

		pq := q
		pq.Offset = page * PageSize
		pq.Limit = PageSize

		rows, err := src.Select(ctx, pq)
		if err != nil {
			if !silent {
				slog.Error("fetch_failed", "table", q.Table, "page", page, "error", err.Error())
			}
			return nil, err
		}

		all = append(all, rows...)
		if !silent {
			slog.Info("fetch_page", "table", q.Table, "page", page, "rows", len(rows))
		}
		if len(rows) < PageSize {
			break
		}
	}
	return all, nil
}
