package services

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rentora/rentora-be/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const passwordSpecials = "@$!%*?&"

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	GetUserByID(ctx context.Context, id string) (models.User, error)
	Signup(ctx context.Context, email, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	FindOrCreateGoogleUser(ctx context.Context, googleID, email string) (models.User, error)
}

// UserService provides business logic for user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a single user by their ID. The password hash is
// excluded from the projection.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	var googleID sql.NullString
	row := s.db.QueryRowContext(ctx, "SELECT id, email, google_id, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Email, &googleID, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	user.GoogleID = googleID.String
	return user, nil
}

// getUserByEmail retrieves a single user by email, including the password hash.
func (s *UserService) getUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	var hash, googleID sql.NullString
	row := s.db.QueryRowContext(ctx, "SELECT id, email, password_hash, google_id, created_at FROM users WHERE email = ?", email)
	err := row.Scan(&user.ID, &user.Email, &hash, &googleID, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	user.PasswordHash = hash.String
	user.GoogleID = googleID.String
	return user, nil
}

// Signup validates the credentials, hashes the password and persists a new
// user. A duplicate email fails with ErrEmailTaken.
func (s *UserService) Signup(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, &ValidationError{Message: "All fields are required."}
	}
	if !emailPattern.MatchString(email) {
		return models.User{}, &ValidationError{Message: "Invalid email format."}
	}
	if !strongPassword(password) {
		return models.User{}, &ValidationError{
			Message: "Password must be at least 8 characters, include uppercase & lowercase letters, a number, and a special character.",
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:    uuid.New().String(),
		Email: email,
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users(id, email, password_hash) VALUES(?, ?, ?)",
		user.ID, user.Email, string(hashedPassword))
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	return user, nil
}

// Authenticate verifies a user's credentials. Missing user and wrong
// password return the same error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, &ValidationError{Message: "All fields are required."}
	}

	user, err := s.getUserByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if user.PasswordHash == "" {
		// Google-only account with no password set.
		return models.User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't hand the password hash back to callers
	user.PasswordHash = ""
	return user, nil
}

// FindOrCreateGoogleUser resolves a Google login to a local user, creating
// one on first login. An account that already exists under the same email
// gets the Google id attached instead of a duplicate row. A concurrent
// first-login for the same identity surfaces as a unique-index violation
// and is resolved by re-reading the winner's row.
func (s *UserService) FindOrCreateGoogleUser(ctx context.Context, googleID, email string) (models.User, error) {
	user, err := s.getUserByGoogleID(ctx, googleID)
	if err == nil {
		return user, nil
	}
	if err != ErrNotFound {
		return models.User{}, err
	}

	if existing, err := s.getUserByEmail(ctx, email); err == nil {
		_, err = s.db.ExecContext(ctx, "UPDATE users SET google_id = ? WHERE id = ?", googleID, existing.ID)
		if err != nil {
			return models.User{}, err
		}
		existing.GoogleID = googleID
		existing.PasswordHash = ""
		return existing, nil
	} else if err != ErrNotFound {
		return models.User{}, err
	}

	user = models.User{
		ID:       uuid.New().String(),
		Email:    email,
		GoogleID: googleID,
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users(id, email, google_id) VALUES(?, ?, ?)",
		user.ID, user.Email, user.GoogleID)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost the insert race; the unique index on google_id
			// guarantees exactly one winner.
			return s.getUserByGoogleID(ctx, googleID)
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) getUserByGoogleID(ctx context.Context, googleID string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx, "SELECT id, email, google_id, created_at FROM users WHERE google_id = ?", googleID)
	err := row.Scan(&user.ID, &user.Email, &user.GoogleID, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// strongPassword requires at least 8 characters drawn from letters, digits
// and @$!%*?&, with at least one lowercase, uppercase, digit and special.
func strongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
