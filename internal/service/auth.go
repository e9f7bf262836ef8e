package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/eduforge/lms/internal/hash"
	"github.com/eduforge/lms/internal/logging"
	"github.com/eduforge/lms/internal/models"
	"github.com/eduforge/lms/internal/tokens"
)

var (
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for unknown email and wrong
	// password alike, so login failures do not reveal which emails exist.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrUnauthenticated = errors.New("could not validate credentials")
)

type AuthService struct {
	DB        *gorm.DB
	JWTSecret []byte
	TokenTTL  time.Duration
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		l.Error("register failed", "error", err)
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = tokens.DefaultTTL
	}
	return tokens.Issue(user.ID, s.JWTSecret, ttl)
}

// Resolve maps a bearer token to the user it was issued for. A valid token
// whose user row no longer exists fails the same way as a bad token.
func (s *AuthService) Resolve(ctx context.Context, tokenStr string) (*models.User, error) {
	id, err := tokens.Parse(tokenStr, s.JWTSecret)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, ErrUnauthenticated
	}
	return &user, nil
}
