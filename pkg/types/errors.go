package types

import "errors"

// Persistence errors. Backend failures wrap ErrStore with the driver's
// diagnostic text; callers test with errors.Is.
var (
	ErrStore            = errors.New("store")
	ErrNoStudent        = errors.New("no student found in DB")
	ErrValue            = errors.New("value error")
	ErrFieldArgMismatch = errors.New("field/argument count mismatch")
	ErrBadDate          = errors.New("bad date conversion")
	ErrParseInt         = errors.New("parse int error")
	ErrClosed           = errors.New("dao is closed")
)

// Import and report errors.
var (
	ErrImporter = errors.New("importer error")
	ErrNoScores = errors.New("no scores found")
)

// Entity validation errors.
var (
	ErrInvalidName = errors.New("name must not be blank")
)
