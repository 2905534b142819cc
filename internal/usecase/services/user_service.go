package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/logger"
	"github.com/api-sage/banking-ledger/internal/usecase/service_interfaces"
)

var _ service_interfaces.UserService = (*UserService)(nil)

type UserService struct {
	userRepo        repo_interfaces.UserRepository
	jwtSecret       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewUserService(userRepo repo_interfaces.UserRepository, jwtSecret string, accessTokenTTL time.Duration, refreshTokenTTL time.Duration) *UserService {
	return &UserService{
		userRepo:        userRepo,
		jwtSecret:       []byte(jwtSecret),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterUserRequest) (commons.Response[models.RegisterUserResponse], error) {
	logger.Info("user service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("user service register validation failed", err, nil)
		return commons.ErrorResponse[models.RegisterUserResponse]("validation failed", err.Error()), err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		logger.Info("user service register email taken", logger.Fields{
			"email": email,
		})
		return commons.ErrorResponse[models.RegisterUserResponse]("validation failed", domain.ErrEmailAlreadyRegistered.Error()), domain.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, commons.ErrRecordNotFound) {
		logger.Error("user service register email lookup failed", err, nil)
		return commons.ErrorResponse[models.RegisterUserResponse]("failed to register user", "Unable to register right now"), err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.Password)), bcrypt.DefaultCost)
	if err != nil {
		wrappedErr := fmt.Errorf("hash password: %w", err)
		logger.Error("user service register hash failed", wrappedErr, nil)
		return commons.ErrorResponse[models.RegisterUserResponse]("failed to register user", "Unable to register right now"), wrappedErr
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: string(hashed),
		IsActive:     true,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		logger.Error("user service register repository failed", err, logger.Fields{
			"email": email,
		})
		return commons.ErrorResponse[models.RegisterUserResponse]("failed to register user", "Unable to register right now"), err
	}

	response := models.RegisterUserResponse{
		ID:        created.ID,
		Email:     created.Email,
		FirstName: created.FirstName,
		LastName:  created.LastName,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	}

	logger.Info("user service register success", logger.Fields{
		"userId": response.ID,
		"email":  response.Email,
	})

	return commons.SuccessResponse("user registered successfully", response), nil
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("user service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("user service login validation failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("validation failed", err.Error()), err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoginResponse]("invalid credentials", domain.ErrInvalidCredentials.Error()), domain.ErrInvalidCredentials
		}
		logger.Error("user service login lookup failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(req.Password))); err != nil {
		logger.Info("user service login password mismatch", logger.Fields{
			"email": email,
		})
		return commons.ErrorResponse[models.LoginResponse]("invalid credentials", domain.ErrInvalidCredentials.Error()), domain.ErrInvalidCredentials
	}

	access, err := s.signToken(user.ID, "access", s.accessTokenTTL)
	if err != nil {
		logger.Error("user service login sign access token failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	refresh, err := s.signToken(user.ID, "refresh", s.refreshTokenTTL)
	if err != nil {
		logger.Error("user service login sign refresh token failed", err, nil)
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	logger.Info("user service login success", logger.Fields{
		"userId": user.ID,
	})

	return commons.SuccessResponse("login successful", models.LoginResponse{
		Access:  access,
		Refresh: refresh,
	}), nil
}

func (s *UserService) signToken(userID string, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}

	return signed, nil
}
