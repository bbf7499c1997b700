package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/procurement/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	t.Run("serialization failure becomes retryable", func(t *testing.T) {
		err := translateError(&pgconn.PgError{Code: "40001", Message: "could not serialize access"})
		assert.True(t, shared.IsRetryable(err))
	})

	t.Run("deadlock and lock timeout become retryable", func(t *testing.T) {
		for _, code := range []string{"40P01", "55P03"} {
			err := translateError(fmt.Errorf("lock requisition: %w", &pgconn.PgError{Code: code}))
			assert.True(t, shared.IsRetryable(err), code)
		}
	})

	t.Run("already retryable errors are not rewrapped", func(t *testing.T) {
		inner := shared.NewRetryableError(&pgconn.PgError{Code: "40001"})
		assert.Same(t, error(inner), translateError(inner))
	})

	t.Run("other errors pass through", func(t *testing.T) {
		constraint := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
		assert.Equal(t, error(constraint), translateError(constraint))
		assert.False(t, shared.IsRetryable(translateError(errors.New("boom"))))
		assert.NoError(t, translateError(nil))
	})
}

func TestGormRequisitionRepository_FindByIDForUpdate_LockTimeoutIsRetryable(t *testing.T) {
	repo, mock, mockDB := newMockRequisitionRepository(t)
	defer mockDB.Close()

	reqID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "requisitions" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
		WithArgs(reqID, 1).
		WillReturnError(&pgconn.PgError{Code: "55P03", Message: "could not obtain lock on row"})

	req, err := repo.FindByIDForUpdate(context.Background(), reqID)

	assert.Nil(t, req)
	assert.True(t, shared.IsRetryable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
