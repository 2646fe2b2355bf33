package services

import (
	"errors"
	"fmt"
	"time"

	"condo_manager/internal/models"
	"condo_manager/internal/repository"
	"condo_manager/pkg/logger"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionClaims is carried in the signed session cookie.
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Role     string `json:"role"`
	ParentID *uint  `json:"parent_id,omitempty"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	ParentID *uint
}

type AuthService interface {
	Register(input RegisterInput) (*models.User, error)
	Login(email, password string) (*models.User, string, error)
	NeedsSetup() (bool, error)
	GenerateToken(user *models.User) (string, error)
	ParseToken(token string) (*SessionClaims, error)
}

type authService struct {
	userRepo     repository.UserRepository
	gamification GamificationService
	jwtSecret    []byte
	sessionTTL   time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	gamification GamificationService,
	jwtSecret string,
	sessionTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		gamification: gamification,
		jwtSecret:    []byte(jwtSecret),
		sessionTTL:   sessionTTL,
	}
}

func (s *authService) Register(input RegisterInput) (*models.User, error) {
	if input.Role == string(models.RoleWorker) && input.ParentID == nil {
		return nil, ErrParentRequired
	}

	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    input.Email,
		Password: string(hashedPassword),
		Name:     input.Name,
		Role:     input.Role,
		ParentID: input.ParentID,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Workers start with a gamification row; failure is not fatal
	if user.Role == string(models.RoleWorker) && s.gamification != nil {
		if err := s.gamification.InitializeForWorker(user.ID); err != nil {
			logger.Log.Warn("failed to initialize gamification", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}

	return user, nil
}

func (s *authService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) NeedsSetup() (bool, error) {
	count, err := s.userRepo.CountByRole(string(models.RoleAdmin))
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (s *authService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   user.ID,
		Role:     user.Role,
		ParentID: user.ParentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) ParseToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
