package types

import (
	"errors"
	"strings"
)

// Config selects the Dao backend and where its database file lives.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
	DBFile  string `json:"db_file" yaml:"db_file"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// DefaultDBFile is used when Config.DBFile is empty.
const DefaultDBFile = "scorg.sqlite"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDBFileInvalid  = errors.New("db file must be a file name, not a path")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if strings.ContainsAny(c.DBFile, `/\`) {
		return ErrDBFileInvalid
	}
	return nil
}

// DBFileName returns DBFile or DefaultDBFile when unset.
func (c Config) DBFileName() string {
	if c.DBFile == "" {
		return DefaultDBFile
	}
	return c.DBFile
}
