package services

import (
	"context"
	"errors"
	"time"

	"bilim-chat/internal/domain/user"
	"bilim-chat/internal/repository"
	apperrors "bilim-chat/pkg/errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored password hashes.
const PasswordCost = 10

var (
	errCredentialsRequired = apperrors.New(apperrors.ErrInvalidInput, "email and password required")
	errEmailTaken          = apperrors.New(apperrors.ErrConflict, "email already used")
	errInvalidCredentials  = apperrors.New(apperrors.ErrInvalidCredentials, "invalid credentials")
	errPasswordTooLong     = apperrors.New(apperrors.ErrInvalidInput, "password too long")
)

type AuthService struct {
	userRepo  repository.UserRepository
	tokens    *TokenService
	dummyHash string
	now       func() time.Time
}

// NewAuthService hashes a throwaway password up front so that logins for
// unknown emails cost one comparison from the very first request.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	dummy, _ := hashPassword("not-a-real-password")
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		dummyHash: dummy,
		now:       time.Now,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName *string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is a freshly issued token and the user it identifies.
type AuthResult struct {
	Token string
	User  user.User
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	if in.Email == "" || in.Password == "" {
		return AuthResult{}, errCredentialsRequired
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, in.Email); err == nil {
		return AuthResult{}, errEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return AuthResult{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return AuthResult{}, errPasswordTooLong
		}
		return AuthResult{}, err
	}

	now := s.now()
	newUser := user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: hash,
		DisplayName:  in.DisplayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return AuthResult{}, errEmailTaken
		}
		return AuthResult{}, err
	}

	return s.issue(newUser)
}

// Login fails with the same error whether the email is unknown or the
// password is wrong. Unknown emails still pay for one bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	if in.Email == "" || in.Password == "" {
		return AuthResult{}, errCredentialsRequired
	}

	u, err := s.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = comparePassword(s.dummyHash, in.Password)
			return AuthResult{}, errInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return AuthResult{}, errInvalidCredentials
	}

	return s.issue(u)
}

func (s *AuthService) issue(u user.User) (AuthResult, error) {
	token, err := s.tokens.Issue(u)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: u}, nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
