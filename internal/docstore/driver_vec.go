//go:build sqlite_vec && cgo

package docstore

import (
	vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

// sqlite_vec build: cgo driver with the sqlite-vec extension auto-loaded,
// enabling vec0 virtual tables for accelerated ANN search.
const sqliteDriver = "sqlite3"

func init() {
	vec.Auto()
}
