package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgrove/taskgrove-api/internal/store"
)

func pgError(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: "some_constraint"}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "no rows", err: sql.ErrNoRows, want: store.ErrNotFound},
		{name: "unique violation", err: pgError(uniqueViolationCode), want: store.ErrDuplicate},
		{name: "foreign key violation", err: pgError(foreignKeyViolationCode), want: store.ErrInvalidEntity},
		{name: "check violation", err: pgError(checkViolationCode), want: store.ErrInvalidEntity},
		{name: "not null violation", err: pgError(notNullViolationCode), want: store.ErrInvalidEntity},
		{
			name: "wrapped no rows",
			err:  fmt.Errorf("query failed: %w", sql.ErrNoRows),
			want: store.ErrNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}

	t.Run("unknown errors pass through", func(t *testing.T) {
		t.Parallel()

		err := errors.New("something else")
		assert.Equal(t, err, MapError(err))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgError(uniqueViolationCode)))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", pgError(uniqueViolationCode))))
	assert.False(t, IsUniqueViolation(pgError(foreignKeyViolationCode)))
	assert.False(t, IsUniqueViolation(errors.New("not a pg error")))
}

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, "task"))
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(fakeResult{rows: 0}, "task")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "task")
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, CheckRowsAffected(nil, "task"))
	})

	t.Run("rows affected error", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, CheckRowsAffected(fakeResult{err: errors.New("driver does not support")}, "task"))
	})
}
