package service

import (
	"errors"
	"fmt"
	"time"

	"wordsprout/internal/domain"
	"wordsprout/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email and password do not match an account
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for expired, malformed or foreign tokens
	ErrInvalidToken = errors.New("invalid token")
	// ErrNotLinked is returned when a chat account is not linked to a parent account
	ErrNotLinked = errors.New("telegram account is not linked")
)

// AuthService handles accounts, sessions and chat account linking
type AuthService struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, secret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// SignUp creates an account. Input is validated before any database call.
func (s *AuthService) SignUp(email, password, confirm string) (*domain.User, error) {
	email, err := domain.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password, confirm, true); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, string(hash))
	if err != nil {
		return nil, err
	}

	s.logger.Info("User signed up", zap.String("user_id", user.ID.String()))
	return user, nil
}

// SignIn checks credentials and issues a session token
func (s *AuthService) SignIn(email, password string) (string, *domain.User, error) {
	user, err := s.checkCredentials(email, password)
	if err != nil {
		return "", nil, err
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

// Authenticate validates a session token and returns the user id it was issued for
func (s *AuthService) Authenticate(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

// LinkTelegram attaches a Telegram account to the parent account with these credentials
func (s *AuthService) LinkTelegram(email, password string, telegramID int64) (*domain.User, error) {
	user, err := s.checkCredentials(email, password)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetTelegramID(user.ID, telegramID); err != nil {
		return nil, err
	}
	user.TelegramID = &telegramID

	s.logger.Info("Telegram account linked",
		zap.String("user_id", user.ID.String()),
		zap.Int64("telegram_id", telegramID),
	)
	return user, nil
}

// UserByTelegram returns the parent account linked to a Telegram account
func (s *AuthService) UserByTelegram(telegramID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByTelegramID(telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotLinked
	}
	return user, nil
}

func (s *AuthService) checkCredentials(email, password string) (*domain.User, error) {
	email, err := domain.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password, "", false); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
