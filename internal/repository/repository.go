package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a document id matches nothing.
	ErrNotFound = gorm.ErrRecordNotFound

	// ErrStore is the single condition every underlying store failure is
	// wrapped in; the original driver message rides along for logging.
	ErrStore = errors.New("store operation failed")

	// ErrDuplicateEmail surfaces a unique violation on account email.
	ErrDuplicateEmail = errors.New("email already in use")
)

func wrapStore(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}

// ListOptions is the filter surface of the store client: zero or more
// equality predicates, an optional created_at range, optional ordering and
// an optional result cap.
type ListOptions struct {
	Equals      map[string]interface{}
	CreatedFrom *time.Time // inclusive
	CreatedTo   *time.Time // exclusive
	OrderBy     string
	Desc        bool
	Limit       int
}

// applyOptions appends WHERE/ORDER/LIMIT clauses for opts. Column names are
// checked against the repository's whitelist so callers can never inject
// arbitrary SQL through a filter key.
func applyOptions(baseQuery string, args []interface{}, opts ListOptions, allowed map[string]bool) (string, []interface{}, error) {
	var filters []string
	for column, value := range opts.Equals {
		if !allowed[column] {
			return "", nil, fmt.Errorf("%w: unknown filter column %q", ErrStore, column)
		}
		filters = append(filters, fmt.Sprintf("%s = ?", column))
		args = append(args, value)
	}
	if opts.CreatedFrom != nil {
		filters = append(filters, "created_at >= ?")
		args = append(args, *opts.CreatedFrom)
	}
	if opts.CreatedTo != nil {
		filters = append(filters, "created_at < ?")
		args = append(args, *opts.CreatedTo)
	}
	if len(filters) > 0 {
		baseQuery += " WHERE " + strings.Join(filters, " AND ")
	}
	if opts.OrderBy != "" {
		if !allowed[opts.OrderBy] {
			return "", nil, fmt.Errorf("%w: unknown order column %q", ErrStore, opts.OrderBy)
		}
		direction := "ASC"
		if opts.Desc {
			direction = "DESC"
		}
		baseQuery += fmt.Sprintf(" ORDER BY %s %s", opts.OrderBy, direction)
	}
	if opts.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	return baseQuery, args, nil
}
