package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/znurfzh/ethic-sub000/internal/app/models"
	"github.com/znurfzh/ethic-sub000/internal/app/models/dto"
	"github.com/znurfzh/ethic-sub000/internal/app/repositories"
	"github.com/znurfzh/ethic-sub000/internal/pkg/apperrors"
	"github.com/znurfzh/ethic-sub000/internal/pkg/auth"
)

// AuthService handles registration, login and the current session
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtService    *auth.JWTService
	hashPasswords bool
	logger        zerolog.Logger

	// shared with UserService; serializes username/email checks with the write
	accountMu *sync.Mutex
}

// NewAuthService creates a new AuthService.
// With hashPasswords false the password is stored exactly as submitted.
func NewAuthService(
	userRepo repositories.UserRepository,
	jwtService *auth.JWTService,
	hashPasswords bool,
	accountMu *sync.Mutex,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtService:    jwtService,
		hashPasswords: hashPasswords,
		accountMu:     accountMu,
		logger:        logger,
	}
}

// Register creates a user and signs them in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	s.accountMu.Lock()
	defer s.accountMu.Unlock()

	if _, err := s.userRepo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrUsernameAlreadyExists, "Username already exists")
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, fmt.Errorf("error checking if username exists: %w", err)
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "Email already exists")
	} else if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}

	user := req.ToModel()
	user.Password = req.Password
	if s.hashPasswords {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.Password = hashed
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().
		Int64("userID", created.ID).
		Str("username", created.Username).
		Str("userType", string(created.UserType)).
		Msg("User registered")

	return s.authResponse(created)
}

// Login checks credentials and issues a token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	invalid := apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid username or password")

	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Debug().Str("username", req.Username).Msg("Password mismatch")
		return nil, invalid
	}

	return s.authResponse(user)
}

// CurrentUser returns the profile behind a session
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.NewUnauthorizedError("Not authenticated")
		}
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		User: dto.NewUserProfile(user),
	}, nil
}
