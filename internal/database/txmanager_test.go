package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestWithTx_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
		assert.IsType(t, &sql.Tx{}, GetTx(ctx, db))
		return nil
	})

	assert.NoError(t, err)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
		return assert.AnError
	})

	assert.Equal(t, assert.AnError, err)
}

func TestWithTx_RollbackFailureKeepsCause(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

	err := NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "connection lost")
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorContains(t, err, "failed to commit transaction")
}

func TestWithTx_NestedJoinsOuterTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	txManager := NewTxManager(db)
	err := txManager.WithTx(context.Background(), func(outer context.Context) error {
		return txManager.WithTx(outer, func(inner context.Context) error {
			assert.Same(t, GetTx(outer, db), GetTx(inner, db))
			return nil
		})
	})

	assert.NoError(t, err)
}

func TestGetTx_WithoutTransaction(t *testing.T) {
	db, _ := newMockDB(t)
	assert.Equal(t, Querier(db), GetTx(context.Background(), db))
}
