package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Customer.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Role:         "customer",
	}

	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		// Unique constraint covers the race between the existence check
		// and the insert.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		s.log.Error("Failed to create customer", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create customer: %w", err)
	}

	session, err := s.createSession(ctx, customer.ID)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err), zap.String("customer_id", customer.ID.String()))
	}

	s.log.Info("Customer registered",
		zap.String("customer_id", customer.ID.String()),
		zap.String("email", customer.Email))

	resp := response.AuthToResponse(customer, session)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	customer, err := s.repo.Customer.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil || !utils.CheckPassword(customer.PasswordHash, req.Password) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, customer.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err),
			zap.String("customer_id", customer.ID.String()))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("Customer logged in", zap.String("customer_id", customer.ID.String()))

	resp := response.AuthToResponse(customer, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return fmt.Errorf("invalid token format: %w", err)
	}

	if err := s.repo.Session.DeleteByToken(ctx, tokenUUID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

func (s *authService) GetProfile(ctx context.Context, customerID uuid.UUID) (*response.CustomerResponse, error) {
	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, ErrNotFound
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *authService) createSession(ctx context.Context, customerID uuid.UUID) (*entity.Session, error) {
	expiry := time.Duration(s.config.Session.ExpiryHours) * time.Hour

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CustomerID: customerID,
		Token:      utils.GenerateSessionToken(),
		ExpiresAt:  time.Now().Add(expiry),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
