package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *stubTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *stubTx) Commit(ctx context.Context) error {
	t.committed = true
	return t.commitErr
}
func (t *stubTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type stubBeginner struct {
	tx       *stubTx
	beginErr error
}

func (b *stubBeginner) BeginTx(ctx context.Context) (Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	tx := &stubTx{}
	db := &stubBeginner{tx: tx}

	err := WithTx(context.Background(), db, func(DBTX) error { return nil })

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	tx := &stubTx{}
	db := &stubBeginner{tx: tx}
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, func(DBTX) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestWithTxRollsBackAndRepanics(t *testing.T) {
	tx := &stubTx{}
	db := &stubBeginner{tx: tx}

	assert.Panics(t, func() {
		_ = WithTx(context.Background(), db, func(DBTX) error { panic("boom") })
	})
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestWithTxReportsBeginFailure(t *testing.T) {
	beginErr := errors.New("pool exhausted")
	db := &stubBeginner{beginErr: beginErr}

	err := WithTx(context.Background(), db, func(DBTX) error { return nil })

	assert.ErrorIs(t, err, beginErr)
}

func TestWithTxReportsCommitFailure(t *testing.T) {
	tx := &stubTx{commitErr: errors.New("serialization failure")}
	db := &stubBeginner{tx: tx}

	err := WithTx(context.Background(), db, func(DBTX) error { return nil })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit transaction")
}
