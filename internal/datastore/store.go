package datastore

import (
	"context"

	"github.com/meslamib3/storiesdb/internal/method"
)

// Store defines the operations on the methods table
type Store interface {
	// Init ensures the methods table exists. It is safe to call on every start.
	Init(ctx context.Context) error

	// Insert appends a record and returns the identifier assigned by the store
	Insert(ctx context.Context, m method.Method) (int64, error)

	// List returns every record ordered by identifier
	List(ctx context.Context) ([]method.Method, error)

	// Get returns one record, or a NotFoundError when no row carries id
	Get(ctx context.Context, id int64) (method.Method, error)

	// IDs returns the identifiers of all records in ascending order
	IDs(ctx context.Context) ([]int64, error)

	// Update replaces all fields of the record with the given id.
	// It reports whether a row was changed; a missing id is not an error.
	Update(ctx context.Context, id int64, m method.Method) (bool, error)

	// Delete removes the record with the given id.
	// It reports whether a row was removed; a missing id is not an error.
	Delete(ctx context.Context, id int64) (bool, error)

	// Close closes the connection to the data store
	Close() error
}
