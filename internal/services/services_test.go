package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/notes-app/internal/models"
	"github.com/yukikurage/notes-app/internal/password"
	"github.com/yukikurage/notes-app/internal/repository"
	"github.com/yukikurage/notes-app/internal/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	noteRepo    repository.NoteRepository
	authService *AuthService
	userService *UserService
	noteService *NoteService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Note{}))

	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	deleter := repository.NewDeleter(db)
	hasher := password.NewBcryptHasher(bcrypt.MinCost)

	return serviceTestEnv{
		db:          db,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		authService: NewAuthService(userRepo, hasher),
		userService: NewUserService(userRepo, deleter),
		noteService: NewNoteService(noteRepo, userRepo, deleter),
	}
}

func (env serviceTestEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := env.authService.Register(context.Background(), RegisterInput{
		Username:  username,
		Password:  "password123",
		Email:     username + "@example.com",
		FirstName: "First",
		LastName:  "Last",
	})
	require.NoError(t, err)
	return user
}

func as(username string) context.Context {
	return session.WithIdentity(context.Background(), username)
}
