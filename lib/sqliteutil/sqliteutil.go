package sqliteutil

import (
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

func driverFor(path string) string {
	if strings.HasPrefix(path, "libsql://") ||
		strings.HasPrefix(path, "ws://") ||
		strings.HasPrefix(path, "wss://") {
		return "libsql"
	}
	return "sqlite"
}

// OpenDB opens a local sqlite file (or a remote libsql url) and
// applies the given schema. re-applying an existing schema is fine.
func OpenDB(schema, path string) (*sql.DB, error) {
	database, err := sql.Open(driverFor(path), path)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		database.Close()
		return nil, err
	}
	return database, nil
}
