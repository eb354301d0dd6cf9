package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmate/internal/models"
)

func TestUserRepository_CreateLowercasesEmail(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewUserRepository(conn)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(sqlmock.AnyArg(), "Ann", "ann@example.com", "hash", "", models.ThemeLight, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{Name: "Ann", Email: "Ann@Example.com", PasswordHash: "hash", Theme: models.ThemeLight}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewUserRepository(conn)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.User{Name: "Ann", Email: "ann@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_GetByEmailMissing(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewUserRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByEmail(context.Background(), "Nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
