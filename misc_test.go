package gotable

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockDialect opens a gorm dialector over a sqlmock connection.
type mockDialect struct {
	name string
	open func(conn *sql.DB) gorm.Dialector
}

var _mockDialects = []mockDialect{
	{
		name: "mysql",
		open: func(conn *sql.DB) gorm.Dialector {
			return mysql.New(mysql.Config{
				Conn:                      conn,
				SkipInitializeWithVersion: true,
			})
		},
	},
	{
		name: "postgres",
		open: func(conn *sql.DB) gorm.Dialector {
			return postgres.New(postgres.Config{
				Conn: conn,
			})
		},
	},
}

func newGORMMock(t *testing.T, dialect mockDialect) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	db, err := gorm.Open(dialect.open(conn), &gorm.Config{})
	require.NoError(t, err)

	return db.Debug(), mock
}
