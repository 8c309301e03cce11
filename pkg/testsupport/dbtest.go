// Package testsupport provides database helpers shared by package tests.
package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

var dbSequence atomic.Int64

// NewSQLiteMemoryDB opens a private in-memory SQLite database. Each call
// returns an isolated database so parallel tests do not share state.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSequence.Add(1))
	return sql.Open("sqlite3", dsn)
}

// NewBunSQLiteDB wraps an in-memory SQLite database with the bun ORM.
func NewBunSQLiteDB() (*bun.DB, error) {
	sqldb, err := NewSQLiteMemoryDB()
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
