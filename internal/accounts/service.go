package accounts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"firetask-backend/internal/firebase"
	"firetask-backend/internal/models"
	"firetask-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// UserStore is the slice of the user repository the reconcilers need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service reconciles account state between the identity provider and the
// local user store: the two are created together or not at all, with a
// compensating delete against the provider when the local half fails.
type Service struct {
	provider firebase.Client
	users    UserStore
}

func NewService(provider firebase.Client, users UserStore) *Service {
	return &Service{
		provider: provider,
		users:    users,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates the provider account first and the local row second. The
// local row references the provider account by uid, so a local failure
// leaves an orphaned remote account; Register deletes it before returning.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, ErrFieldsRequired
	}

	if !emailPattern.MatchString(in.Email) {
		return nil, ErrInvalidEmail
	}

	if len(in.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	// The hash is a placeholder (sign-in never checks it), computed before
	// the remote call so a hashing failure cannot strand a provider account.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)

	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	displayName := in.FirstName + " " + in.LastName

	uid, err := s.provider.CreateAccount(ctx, in.Email, in.Password, displayName)

	if err != nil {
		// Nothing local was touched, so there is nothing to compensate.
		return nil, err
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: string(passwordHash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		FirebaseUID:  uid,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.compensateCreate(ctx, uid)

		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, &SignupError{
				FieldErrors: map[string][]string{
					"email": {"user with this email already exists."},
				},
				Err: err,
			}
		}

		return nil, &SignupError{Err: err}
	}

	return user, nil
}

// compensateCreate rolls back the provider half of a failed registration.
// Its own failure is logged and otherwise swallowed: the caller gets the
// persistence error either way, and the orphaned account remains until the
// next sign-in attempt sweeps it (see Login).
func (s *Service) compensateCreate(ctx context.Context, uid string) {
	if err := s.provider.DeleteAccount(ctx, uid); err != nil {
		log.Printf("Failed to delete provider account %s after local persistence failure: %v", uid, err)
	}
}

// LoginResult combines the local user record with the provider session
// issued for it.
type LoginResult struct {
	User    *models.User
	Session *firebase.Session
}

// Login delegates the credential check to the provider, then requires a
// matching local row. A provider account with no local row is an orphan from
// a half-finished registration; Login deletes it using the session token it
// just received.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	session, err := s.provider.SignIn(ctx, email, password)

	if err != nil {
		// Deliberately generic: wrong password, unknown account, and
		// provider outages all read the same to avoid account enumeration.
		return nil, firebase.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if delErr := s.provider.DeleteAccountByToken(ctx, session.IDToken); delErr != nil {
				log.Printf("Failed to delete orphaned provider account for %s: %v", email, delErr)
			}

			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("looking up user: %w", err)
	}

	return &LoginResult{
		User:    user,
		Session: session,
	}, nil
}
