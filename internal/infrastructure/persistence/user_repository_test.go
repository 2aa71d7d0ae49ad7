package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/invoiceapp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormUserRepository(gormDB), mock, mockDB
}

func TestGormUserRepository_FindByID(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "email", "username", "full_name", "password_hash", "is_active"}).
			AddRow(userID, "jane@example.com", "jane", "Jane Doe", "$2a$12$hash", true)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnRows(rows)

		user, err := repo.FindByID(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.True(t, user.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByID(context.Background(), userID)

		assert.Nil(t, user)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindByEmail(t *testing.T) {
	t.Run("lowercases the email before lookup", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "email", "username", "full_name", "password_hash", "is_active"}).
			AddRow(userID, "jane@example.com", "jane", "Jane Doe", "$2a$12$hash", true)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("jane@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "Jane@Example.COM")

		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_List(t *testing.T) {
	t.Run("returns page with activity chip counts", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		rows := sqlmock.NewRows([]string{"id", "email", "username", "full_name", "password_hash", "is_active"}).
			AddRow(userID, "jane@example.com", "jane", "Jane Doe", "$2a$12$hash", true)

		mock.ExpectQuery(`SELECT \* FROM "users" ORDER BY id ASC LIMIT .*`).
			WithArgs(100).
			WillReturnRows(rows)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE is_active = \$1`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		users, meta, err := repo.List(context.Background(), shared.ListQuery{Limit: 100})

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, int64(3), meta.Total)
		assert.Equal(t, int64(3), meta.Filters["all_count"])
		assert.Equal(t, int64(2), meta.Filters["active_count"])
		assert.Equal(t, int64(1), meta.Filters["inactive_count"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("binds the activity filter as a boolean", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		// is_active is a boolean column; the filter parameter must be a
		// bool, not the string "false"
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE is_active = \$1`).
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows([]string{"id", "email", "username", "full_name", "password_hash", "is_active"}).
			AddRow(userID, "bob@example.com", "bob", "Bob Smith", "$2a$12$hash", false)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE is_active = \$1 ORDER BY id ASC LIMIT .*`).
			WithArgs(false, 100).
			WillReturnRows(rows)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE is_active = \$1`).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		users, meta, err := repo.List(context.Background(), shared.ListQuery{Limit: 100, Category: "false"})

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.False(t, users[0].IsActive)
		assert.Equal(t, int64(1), meta.Total)
		assert.Equal(t, int64(3), meta.Filters["all_count"])
		assert.Equal(t, int64(2), meta.Filters["active_count"])
		assert.Equal(t, int64(1), meta.Filters["inactive_count"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_Delete(t *testing.T) {
	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectExec(`DELETE FROM "users" WHERE id = \$1`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), userID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
