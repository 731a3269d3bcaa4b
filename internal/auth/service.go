package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/config"
	"ticketly/internal/users"
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type service struct {
	repo   users.Repository
	config *config.Config
}

func NewService(repo users.Repository, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		config: cfg,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if req.Username == "" && req.Email == "" {
		return nil, apperrors.Validation("either username or email is required")
	}

	if req.Email != "" {
		exists, err := s.repo.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Conflict("email already registered")
		}
	}
	if req.Username != "" {
		exists, err := s.repo.UsernameExists(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Conflict("username already taken")
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         users.RoleCustomer,
		Status:       users.StatusActive,
	}
	if req.Username != "" {
		user.Username = &req.Username
	}
	if req.Email != "" {
		user.Email = &req.Email
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokenPair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// Login authenticates a user. Admin accounts sign in with username,
// customer accounts with email; the wrong channel is rejected.
func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	var user *users.User
	var err error

	switch {
	case req.Username != "":
		user, err = s.repo.GetByUsername(ctx, req.Username)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Unauthorized("incorrect username or password")
			}
			return nil, err
		}
		if !user.IsAdmin() {
			return nil, apperrors.Forbidden("admin must login with username; this account is not an admin")
		}
	case req.Email != "":
		user, err = s.repo.GetByEmail(ctx, req.Email)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.Unauthorized("incorrect email or password")
			}
			return nil, err
		}
		if user.IsAdmin() {
			return nil, apperrors.Forbidden("admin accounts must login with username, not email")
		}
	default:
		return nil, apperrors.Validation("either username or email is required")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	if !user.IsActive() {
		return nil, apperrors.Forbidden("inactive user")
	}

	tokenPair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != "refresh" {
		return nil, apperrors.Unauthorized("invalid token type")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token subject")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Unauthorized("user no longer exists")
	}
	if !user.IsActive() {
		return nil, apperrors.Forbidden("inactive user")
	}

	return s.generateTokenPair(user)
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperrors.Unauthorized("invalid credentials")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashedPassword)
	return s.repo.Update(ctx, user)
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	return s.validateToken(tokenString)
}

func (s *service) generateTokenPair(user *users.User) (*TokenPair, error) {
	now := time.Now()

	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	accessClaims := JWTClaims{
		UserID: user.ID.String(),
		Email:  email,
		Role:   string(user.Role),
		Type:   "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.AccessExpiresIn)),
			Issuer:    "ticketly",
			Subject:   user.ID.String(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	refreshClaims := JWTClaims{
		UserID: user.ID.String(),
		Role:   string(user.Role),
		Type:   "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.RefreshExpiresIn)),
			Issuer:    "ticketly",
			Subject:   user.ID.String(),
		},
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.JWT.AccessExpiresIn.Seconds()),
	}, nil
}

func (s *service) validateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.JWT.Secret), nil
	})
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.Unauthorized("invalid token")
}
