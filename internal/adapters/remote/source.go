package remote

import (
	"context"

	"coachdesk/internal/domain/row"
)

// Query describes one ranged select against a logical table on the hosted
// store.
type Query struct {
	Table     string
	Select    string   // column selection, including nested-relation selection
	NotNull   []string // columns required to be non-null
	OrderBy   string
	OrderDesc bool
	Offset    int
	Limit     int
}

// RowSource is the remote paginated query interface. Implementations must
// surface a *QueryError for store-reported failures so callers can branch
// on the error code.
type RowSource interface {
	Select(ctx context.Context, q Query) ([]row.Row, error)
}
