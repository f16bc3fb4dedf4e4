//go:build !sqlite_vec

package docstore

import (
	_ "modernc.org/sqlite"
)

// Default build: pure-Go SQLite driver, no cgo required.
const sqliteDriver = "sqlite"
