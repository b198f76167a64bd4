package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/devconnector-backend/internal/domain"
	"github.com/gdugdh24/devconnector-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase struct {
	userRepo  repository.UserRepository
	jwtSecret string
	expiry    time.Duration
	now       func() time.Time
}

func NewAuthUseCase(userRepo repository.UserRepository, jwtSecret string, expiry time.Duration) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		expiry:    expiry,
		now:       time.Now,
	}
}

// Claims identifies the authenticated user inside a token.
type Claims struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	jwt.RegisteredClaims
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=30"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=30"`
	Password2 string `json:"password2" binding:"required,eqfield=Password"`
	Avatar    string `json:"avatar" binding:"omitempty,url"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Register creates a new user with a bcrypt-hashed password
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    email,
		Password: string(hash),
		Avatar:   req.Avatar,
		Date:     uc.now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and issues a signed token
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &LoginResponse{
		Success: true,
		Token:   "Bearer " + token,
	}, nil
}

// IssueToken signs a token for user
func (uc *AuthUseCase) IssueToken(user *domain.User) (string, error) {
	now := uc.now()
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Avatar: user.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.jwtSecret))
}

// VerifyToken verifies a token and returns its claims
func (uc *AuthUseCase) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// GetCurrent returns the authenticated user
func (uc *AuthUseCase) GetCurrent(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}
