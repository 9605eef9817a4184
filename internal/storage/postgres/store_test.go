package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "@fromHook:cadastro"

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return New(db), mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func TestGet(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(q(`SELECT value FROM kv WHERE key = $1`)).
		WithArgs(key).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

	v, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)
}

func TestGet_Absent(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(q(`SELECT value FROM kv WHERE key = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, err := s.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestGet_Error(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(q(`SELECT value FROM kv`)).WillReturnError(errors.New("conn reset"))

	_, err := s.Get(context.Background(), key)
	require.ErrorContains(t, err, "failed to get kv")
}

func TestSet(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(q(`INSERT INTO kv (key, value) VALUES ($1, $2)`)).
		WithArgs(key, []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), key, []byte(`[]`)))
}

func TestDeleteAndClear(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectExec(q(`DELETE FROM kv WHERE key = $1`)).WithArgs(key).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q(`DELETE FROM kv`)).WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, s.Delete(context.Background(), key))
	require.NoError(t, s.Clear(context.Background()))
}

func TestList(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(q(`SELECT key, value FROM kv`)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow(key, []byte(`[]`)).
			AddRow("other", []byte("x")))

	all, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{key: []byte(`[]`), "other": []byte("x")}, all)
}

func TestUpdate_Commits(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(q(`SELECT pg_advisory_xact_lock(hashtext($1))`)).WithArgs(key).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q(`SELECT value FROM kv WHERE key = $1 FOR UPDATE`)).
		WithArgs(key).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[1]`)))
	mock.ExpectExec(q(`INSERT INTO kv`)).WithArgs(key, []byte(`[1,2]`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Update(context.Background(), key, func(cur []byte) ([]byte, error) {
		assert.Equal(t, []byte(`[1]`), cur)
		return []byte(`[1,2]`), nil
	})
	require.NoError(t, err)
}

func TestUpdate_RollsBackOnFnError(t *testing.T) {
	s, mock := newMock(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(q(`SELECT pg_advisory_xact_lock`)).WithArgs(key).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(q(`FOR UPDATE`)).WithArgs(key).WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectRollback()

	err := s.Update(context.Background(), key, func(cur []byte) ([]byte, error) {
		assert.Nil(t, cur)
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestRunMigrations(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, RunMigrations(context.Background(), db))
	assert.Equal(t, "migrations", gotDir)

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("locked")
	}
	require.ErrorContains(t, RunMigrations(context.Background(), db), "failed to run migrations")
}
