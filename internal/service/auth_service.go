package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/juju/errors"

	"healthcommunity/internal/config"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.Account, error)
	Login(ctx context.Context, email, password string) (*models.Account, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.Account, string, string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	IdentityFromToken(tokenString string) (*models.Identity, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	cfg         *config.Config
	clock       clock.Clock
}

func NewAuthService(accountRepo repository.AccountRepository, cfg *config.Config, clk clock.Clock) AuthService {
	return &authService{
		accountRepo: accountRepo,
		cfg:         cfg,
		clock:       clk,
	}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.Account, error) {
	exists, err := s.accountRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if exists {
		return nil, errors.AlreadyExistsf("account with email %s", req.Email)
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	account := &models.Account{
		Name:                   req.Name,
		Email:                  req.Email,
		Role:                   role,
		Gender:                 req.Gender,
		Phone:                  req.Phone,
		IsActive:               true,
		IsVerified:             role == models.RoleCounselor,
		RefreshToken:           refreshToken,
		RefreshTokenExpiryTime: refreshTokenExpiry,
		CreatedAt:              s.clock.Now(),
	}

	if err := s.accountRepo.CreateAccount(ctx, account, req.Password); err != nil {
		return nil, errors.Trace(err)
	}

	logger.Infof("registered account %s (%s)", account.AccountID, account.Role)
	return account, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.Account, string, string, error) {
	account, err := s.accountRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", "", errors.Trace(err)
	}
	if !account.IsActive {
		return nil, "", "", errors.Forbiddenf("account is deactivated")
	}

	accessToken, err := s.generateAccessToken(account)
	if err != nil {
		return nil, "", "", err
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	if err := s.accountRepo.UpdateRefreshToken(ctx, account.AccountID, refreshToken, refreshTokenExpiry); err != nil {
		return nil, "", "", errors.Annotate(err, "saving refresh token")
	}

	now := s.clock.Now()
	if err := s.accountRepo.TouchLastLogin(ctx, account.AccountID, now); err != nil {
		logger.Warningf("recording last login for %s: %v", account.AccountID, err)
	} else {
		account.LastLogin = &now
	}

	return account, accessToken, refreshToken, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.Account, string, string, error) {
	account, err := s.accountRepo.GetAccountByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", "", errors.Trace(err)
	}
	if !account.IsActive {
		return nil, "", "", errors.Forbiddenf("account is deactivated")
	}

	accessToken, err := s.generateAccessToken(account)
	if err != nil {
		return nil, "", "", err
	}

	newRefreshToken, refreshTokenExpiry := s.generateRefreshToken()

	if err := s.accountRepo.UpdateRefreshToken(ctx, account.AccountID, newRefreshToken, refreshTokenExpiry); err != nil {
		return nil, "", "", errors.Annotate(err, "rotating refresh token")
	}

	return account, accessToken, newRefreshToken, nil
}

func (s *authService) generateAccessToken(account *models.Account) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"accountId": account.AccountID,
		"email":     account.Email,
		"role":      account.Role,
		"exp":       now.Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":       now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", errors.Annotate(err, "signing access token")
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	return uuid.New().String(), s.clock.Now().Add(s.cfg.RefreshTokenDuration)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return nil, errors.Unauthorizedf("invalid token: %v", err)
	}

	if !token.Valid {
		return nil, errors.Unauthorizedf("invalid token")
	}

	return token, nil
}

func (s *authService) IdentityFromToken(tokenString string) (*models.Identity, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.Unauthorizedf("invalid token claims")
	}

	accountID, ok1 := claims["accountId"].(string)
	email, ok2 := claims["email"].(string)
	role, ok3 := claims["role"].(string)
	if !ok1 || !ok2 || !ok3 || accountID == "" {
		return nil, errors.Unauthorizedf("invalid token claims")
	}

	return &models.Identity{AccountID: accountID, Email: email, Role: role}, nil
}
