package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMigrations() fstest.MapFS {
	return fstest.MapFS{
		"000002_second.up.sql": {Data: []byte("CREATE TABLE b (id TEXT)")},
		"000001_first.up.sql":  {Data: []byte("CREATE TABLE a (id TEXT)")},
		"README.md":            {Data: []byte("ignored")},
	}
}

func TestRunMigrations_AppliesPendingInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("000001_first.up.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("000002_second.up.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE b").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("000002_second.up.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := RunMigrations(context.Background(), db, testMigrations())

	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("000001_first.up.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE a").WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	applied, err := RunMigrations(context.Background(), db, testMigrations())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "000001_first.up.sql")
	assert.Equal(t, 0, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_EmbedsSchema(t *testing.T) {
	data, err := Migrations().Open("000004_create_reviews.up.sql")
	require.NoError(t, err)
	defer data.Close()

	stat, err := data.Stat()
	require.NoError(t, err)
	assert.Greater(t, stat.Size(), int64(0))
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := &DBConfig{Host: "db", Port: 5432, Username: "u", Password: "p", DBName: "market"}
	assert.Equal(t, "postgresql://u:p@db:5432/market?sslmode=disable", cfg.DSN())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
}
