// Package sqlite provides the public API for the SQLite Dao. It exposes
// the factory functions while keeping the implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/scorg/internal/sqlite"
	"github.com/mesh-intelligence/scorg/pkg/types"
)

// Open opens the database described by config. The schema is not created;
// call Init on the returned Dao.
//
// Example:
//
//	dao, err := sqlite.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".scorg-db",
//	})
//	if err != nil {
//	    return err
//	}
//	defer dao.Close()
//	err = dao.Init()
func Open(config types.Config) (types.Dao, error) {
	b, err := sqlite.Open(config)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// OpenMemory opens a private in-memory database. Useful in tests.
func OpenMemory() (types.Dao, error) {
	b, err := sqlite.OpenMemory()
	if err != nil {
		return nil, err
	}
	return b, nil
}
