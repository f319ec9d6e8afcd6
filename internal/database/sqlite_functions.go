package database

import (
	"database/sql/driver"
	"fmt"
	"strings"

	moderncsqlite "modernc.org/sqlite"
)

// SQLite's built-in lower() folds ASCII only. Overriding it keeps
// case-insensitive search on the sqlite driver in line with PostgreSQL,
// which folds Unicode.
func init() {
	moderncsqlite.MustRegisterDeterministicScalarFunction("lower", 1, unicodeLower)
}

func unicodeLower(_ *moderncsqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(fmt.Sprint(v)), nil
	}
}
