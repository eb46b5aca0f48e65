package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantagesuite/vantage/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestTokenRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	accessToken := &domain.AccessToken{
		ID:          uuid.New(),
		PrincipalID: uuid.New(),
		Name:        "firefox",
		TokenHash:   "deadbeef",
		Abilities:   []string{"*"},
		CreatedAt:   time.Now(),
	}

	mock.ExpectExec("INSERT INTO access_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), accessToken)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepositoryGetByHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	id := uuid.New()
	principalID := uuid.New()
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "principal_id", "name", "token_hash", "abilities",
			"last_used_at", "expires_at", "revoked_at", "created_at",
		}).AddRow(id, principalID, "firefox", "deadbeef", "{*}", nil, nil, nil, now)

		mock.ExpectQuery("SELECT (.+) FROM access_tokens").
			WithArgs("deadbeef").
			WillReturnRows(rows)

		token, err := repo.GetByHash(context.Background(), "deadbeef")
		require.NoError(t, err)
		assert.Equal(t, id, token.ID)
		assert.Equal(t, principalID, token.PrincipalID)
		assert.True(t, token.Valid(time.Now()))
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM access_tokens").
			WithArgs("unknown").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByHash(context.Background(), "unknown")
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepositoryRevoke(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)
	id := uuid.New()

	t.Run("revokes once", func(t *testing.T) {
		mock.ExpectExec("UPDATE access_tokens").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Revoke(context.Background(), id))
	})

	t.Run("already revoked", func(t *testing.T) {
		mock.ExpectExec("UPDATE access_tokens").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.Error(t, repo.Revoke(context.Background(), id))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepositoryDeleteExpired(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTokenRepository(db)

	mock.ExpectExec("DELETE FROM access_tokens").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
