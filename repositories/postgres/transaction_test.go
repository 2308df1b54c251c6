package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/repositories"
)

func TestTransactionManager_InTransaction(t *testing.T) {
	t.Run("commits when the function succeeds", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE camps").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := tm.InTransaction(context.Background(), func(ctx context.Context, tx repositories.Transaction) error {
			executor := GetExecutor(ctx, db)
			_, err := executor.ExecContext(ctx, "UPDATE camps SET participant_count = participant_count + 1")
			return err
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the function fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectRollback()

		wantErr := errors.New("boom")
		err := tm.InTransaction(context.Background(), func(ctx context.Context, tx repositories.Transaction) error {
			return wantErr
		})

		assert.ErrorIs(t, err, wantErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("executor inside the transaction context is the transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		tm := NewTransactionManager(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := tm.InTransaction(context.Background(), func(ctx context.Context, tx repositories.Transaction) error {
			fromCtx, ok := GetTransactionFromContext(ctx)
			assert.True(t, ok)
			assert.Same(t, tx, fromCtx)
			assert.NotSame(t, Executor(db.DB), GetExecutor(ctx, db))
			return nil
		})

		require.NoError(t, err)
	})
}

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	db, _ := newMockDB(t)

	executor := GetExecutor(context.Background(), db)
	assert.Equal(t, Executor(db.DB), executor)
}
