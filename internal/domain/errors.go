package domain

import "errors"

// Storage level outcomes. Repositories return these instead of driver errors
// so services never import the SQL driver.
var (
	// ErrDuplicateEntry is a unique key violation, e.g. an email registered twice.
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrNotFound       = errors.New("not found")
	// ErrNoRowsAffected is a guarded update that matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)
