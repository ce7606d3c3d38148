package remote

import (
	"errors"
	"fmt"
)

// Error codes the fallback policies branch on. These are the store's own
// codes, passed through untouched.
const (
	// CodeUndefinedTable is reported when a relation does not exist:
	// an expected absence, not a fault.
	CodeUndefinedTable = "42P01"

	// CodeUndefinedColumn is reported for a missing column in a select
	// shape, typically from a joined select against a flat schema.
	CodeUndefinedColumn = "42703"
)

// QueryError carries the structured error body returned by the hosted
// store. It is propagated unchanged so callers can inspect the code; it is
// never flattened into a generic message.
type QueryError struct {
	Code       string
	Message    string
	Details    string
	Hint       string
	HTTPStatus int
}

func (e *QueryError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("remote query failed: %s (code %s)", e.Message, e.Code)
	}
	return fmt.Sprintf("remote query failed: %s (status %d)", e.Message, e.HTTPStatus)
}

// IsMissingRelation reports whether err is the store's "relation does not
// exist" condition.
func IsMissingRelation(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe) && qe.Code == CodeUndefinedTable
}

// IsSchemaMismatch reports whether err looks like a schema-shape problem
// (missing relation or column) rather than a genuine fault.
func IsSchemaMismatch(err error) bool {
	var qe *QueryError
	if !errors.As(err, &qe) {
		return false
	}
	return qe.Code == CodeUndefinedTable || qe.Code == CodeUndefinedColumn
}
