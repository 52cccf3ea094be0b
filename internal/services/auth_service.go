package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yukikurage/notes-app/internal/constants"
	"github.com/yukikurage/notes-app/internal/models"
	"github.com/yukikurage/notes-app/internal/password"
	"github.com/yukikurage/notes-app/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// dummyPassword is hashed once so that unknown usernames cost one bcrypt comparison too.
const dummyPassword = "notes-app-timing-equalizer"

// AuthService registers identities and verifies login attempts.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   password.Hasher

	dummyOnce   sync.Once
	dummyDigest string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher password.Hasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// RegisterInput holds the fields of a new account.
type RegisterInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// Register creates a user with a hashed password.
// Usernames, emails and names are trimmed before they are length-checked and stored.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = normalizeUsername(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if err := validateRegistration(input); err != nil {
		return nil, err
	}
	username, email := input.Username, input.Email

	if err := s.checkAvailable(ctx, username, email); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		PasswordHash: digest,
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration may have won the race; the unique constraint is the final arbiter.
		if recheck := s.checkAvailable(ctx, username, email); recheck != nil {
			return nil, recheck
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateUser, err)
	}

	return user, nil
}

func validateRegistration(input RegisterInput) error {
	v := &ValidationError{}
	v.checkLength("username", input.Username, constants.MinUsernameLength, constants.MaxUsernameLength)
	v.checkLength("password", input.Password, constants.MinPasswordLength, constants.MaxPasswordLength)
	if input.Email == "" {
		v.add("email", "This field is required.")
	}
	v.checkLength("first_name", input.FirstName, constants.MinNameLength, constants.MaxNameLength)
	v.checkLength("last_name", input.LastName, constants.MinNameLength, constants.MaxNameLength)
	return v.errOrNil()
}

func (s *AuthService) checkAvailable(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	return nil
}

// Authenticate returns the user iff password matches. Unknown usernames and
// wrong passwords both yield ErrInvalidCredentials after one hash comparison.
func (s *AuthService) Authenticate(ctx context.Context, username, plaintext string) (*models.User, error) {
	username = normalizeUsername(username)
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.Verify(plaintext, s.dummy())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		// A failed hash leaves the digest empty; Verify then fails fast, which only weakens timing.
		s.dummyDigest, _ = s.hasher.Hash(dummyPassword)
	})
	return s.dummyDigest
}
