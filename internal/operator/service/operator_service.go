package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ridloal/pos-caisse/internal/operator/domain"
	"github.com/ridloal/pos-caisse/internal/operator/repository"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
)

const TokenTTL = 12 * time.Hour

var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrOperatorAlreadyExists = errors.New("operator with this username already exists")
	ErrInvalidRole           = errors.New("invalid operator role")
	ErrInvalidToken          = errors.New("invalid or expired token")
)

// Claims travel in the operator JWT.
type Claims struct {
	OperatorID string      `json:"operator_id"`
	Username   string      `json:"username"`
	Role       domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type OperatorService interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Operator, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	ParseToken(token string) (*Claims, error)
}

type operatorService struct {
	repo   repository.OperatorRepository
	secret []byte
	clock  func() time.Time
}

func NewOperatorService(repo repository.OperatorRepository, secret string, clock func() time.Time) OperatorService {
	if clock == nil {
		clock = time.Now
	}
	return &operatorService{repo: repo, secret: []byte(secret), clock: clock}
}

func (s *operatorService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Operator, error) {
	req.Username = strings.TrimSpace(strings.ToLower(req.Username))
	if req.Role == "" {
		req.Role = domain.RoleCashier
	}
	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Register: failed to hash password", err)
		return nil, fmt.Errorf("could not process registration: %w", err)
	}

	op := &domain.Operator{
		Username:     req.Username,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateOperator(ctx, op); err != nil {
		if errors.Is(err, repository.ErrOperatorConflict) {
			return nil, ErrOperatorAlreadyExists
		}
		logger.Error("Register: failed to create operator in repo", err)
		return nil, fmt.Errorf("could not save operator: %w", err)
	}

	op.PasswordHash = ""
	logger.Info("operator registered", "username", op.Username, "role", op.Role)
	return op, nil
}

func (s *operatorService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	op, err := s.repo.GetOperatorByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if !errors.Is(err, repository.ErrOperatorNotFound) {
			logger.Error("Login: failed to get operator", err)
		}
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.clock()
	expiresAt := now.Add(TokenTTL)
	claims := Claims{
		OperatorID: op.ID,
		Username:   op.Username,
		Role:       op.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   op.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		logger.Error("Login: failed to sign token", err)
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	op.PasswordHash = ""
	return &domain.LoginResponse{Operator: *op, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *operatorService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}
