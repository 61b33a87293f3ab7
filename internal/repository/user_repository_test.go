package repository_test

import (
	"context"
	"testing"
	"time"

	"taskflow/internal/model"
	"taskflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_Create(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	userID := uuid.New()
	user := &model.User{
		ID:             userID,
		Email:          "test@example.com",
		HashedPassword: "hashed_password",
		Name:           "Test User",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WithArgs(user.Email, user.HashedPassword, user.Name, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))
	mock.ExpectCommit()

	err := userRepo.Create(context.Background(), user)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_Found(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	userID := uuid.New()
	email := "test@example.com"

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .* LIMIT 1`).
		WithArgs(email).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_password", "name", "created_at"}).
			AddRow(userID.String(), email, "hashed_password", "Test User", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))

	user, err := userRepo.FindByEmail(context.Background(), email)

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, email, user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	email := "nonexistent@example.com"

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .* LIMIT 1`).
		WithArgs(email).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := userRepo.FindByEmail(context.Background(), email)

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_Error(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	userRepo := repository.NewUserRepository(gormDB)

	email := "test@example.com"

	mock.ExpectQuery(`SELECT .* FROM "users" WHERE email = .* LIMIT 1`).
		WithArgs(email).
		WillReturnError(assert.AnError)

	_, err := userRepo.FindByEmail(context.Background(), email)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
