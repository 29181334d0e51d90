package sqlite

// enableForeignKeys turns on reference enforcement for the connection.
// SQLite leaves it off by default.
const enableForeignKeys = `PRAGMA foreign_keys=on`

// Schema DDL. score.date is UNIQUE across the whole table, not per student.
const (
	createStudent = `CREATE TABLE IF NOT EXISTS student (
    id TEXT PRIMARY KEY,
    first_names TEXT,
    last_name TEXT,
    date_of_birth TEXT,
    UNIQUE(first_names, last_name)
)`

	createScore = `CREATE TABLE IF NOT EXISTS score (
    id TEXT,
    correct INTEGER,
    incorrect INTEGER,
    date TEXT UNIQUE,
    FOREIGN KEY(id) REFERENCES student(id)
)`
)

// initStatements run in order on Init; each is idempotent.
var initStatements = []string{
	enableForeignKeys,
	createStudent,
	createScore,
}
