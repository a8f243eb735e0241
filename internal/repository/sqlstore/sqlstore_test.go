package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	_, err = ParseDialect("mysql")
	require.Error(t, err)
}

func TestWithQueryParam(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"file:conf.db", "file:conf.db?_foreign_keys=on"},
		{"file:conf.db?cache=shared", "file:conf.db?_foreign_keys=on&cache=shared"},
		{"file:conf.db?_foreign_keys=off", "file:conf.db?_foreign_keys=off"},
	}
	for _, tt := range tests {
		got, err := withQueryParam(tt.dsn, "_foreign_keys", "on")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, isForeignKeyViolation(nil))
}

func TestMigrate(t *testing.T) {
	for _, d := range []Dialect{Postgres, SQLite} {
		t.Run(string(d), func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`CREATE TABLE IF NOT EXISTS states`).WillReturnResult(sqlmock.NewResult(0, 0))
			require.NoError(t, Migrate(context.Background(), db, d))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
