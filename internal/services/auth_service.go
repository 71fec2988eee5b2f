package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gradcollab/gradcollab-backend/internal/config"
	"github.com/gradcollab/gradcollab-backend/internal/dto"
	"github.com/gradcollab/gradcollab-backend/internal/models"
	"github.com/gradcollab/gradcollab-backend/internal/session"
	"github.com/gradcollab/gradcollab-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	registerMessages = map[string]string{
		"email":    "Email is not valid",
		"password": "Password must be at least 6 characters long",
	}
	loginMessages = map[string]string{
		"email":    "Email is not valid",
		"password": "Password cannot be blank",
	}
)

// AuthResponse is what a successful register or login produces: the
// cookie value for the new session and the user it belongs to.
type AuthResponse struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResponse, error) {
	req.Email = validation.NormalizeEmail(req.Email)
	if fields, err := validation.Struct(req, registerMessages); err != nil {
		return nil, err
	} else if fields != nil {
		return nil, NewValidationError(fields)
	}

	db := s.db.WithContext(ctx)

	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost())
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID.String())
	return s.startSession(ctx, &user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResponse, error) {
	req.Email = validation.NormalizeEmail(req.Email)
	if fields, err := validation.Struct(req, loginMessages); err != nil {
		return nil, err
	} else if fields != nil {
		return nil, NewValidationError(fields)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, &user)
}

// Logout revokes a session. Revoking an unknown or already revoked session
// is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("revoked", true).Error
}

// CheckSession confirms that sessionID exists, belongs to userID and is
// neither revoked nor expired.
func (s *AuthService) CheckSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	var sess models.Session
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", sessionID, userID).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSessionInactive
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if !sess.Active(time.Now()) {
		return ErrSessionInactive
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) startSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	record := models.Session{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.cfg.SessionTTL),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := session.Sign(s.cfg.SessionSecret, user.ID, record.ID, record.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	return &AuthResponse{Token: token, ExpiresAt: record.ExpiresAt, User: user}, nil
}

func (s *AuthService) bcryptCost() int {
	if s.cfg.BcryptCost < bcrypt.MinCost || s.cfg.BcryptCost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return s.cfg.BcryptCost
}
