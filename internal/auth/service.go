package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backend-alpsconnect/internal/mockdata"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Service struct {
	secret  []byte
	byEmail map[string]Account
	byID    map[string]Account
	tokens  TokenStore
}

func NewService(secret string, accounts []Account, tokens TokenStore) *Service {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	s := &Service{
		secret:  []byte(secret),
		byEmail: map[string]Account{},
		byID:    map[string]Account{},
		tokens:  tokens,
	}
	for _, a := range accounts {
		s.byEmail[strings.ToLower(a.Email)] = a
		s.byID[a.ID] = a
	}
	return s
}

var hashPasswordFn = bcrypt.GenerateFromPassword

// DemoAccounts builds the fixed guide and client logins, all sharing password.
func DemoAccounts(password string) ([]Account, error) {
	hash, err := hashPasswordFn([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	ids := mockdata.Identities()
	out := make([]Account, 0, len(ids))
	for _, id := range ids {
		out = append(out, Account{
			ID:           id.ID,
			Email:        id.Email,
			Name:         id.Name,
			Role:         id.Role,
			PasswordHash: string(hash),
		})
	}
	return out, nil
}

func (s *Service) Account(id string) (Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (Account, TokenResponse, error) {
	acct, ok := s.byEmail[strings.ToLower(strings.TrimSpace(req.Email))]
	if !ok {
		return Account{}, TokenResponse{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)); err != nil {
		return Account{}, TokenResponse{}, ErrInvalidCredentials
	}

	tokens, err := s.GenerateTokens(ctx, acct)
	if err != nil {
		return Account{}, TokenResponse{}, err
	}
	return acct, tokens, nil
}

func (s *Service) GenerateTokens(ctx context.Context, acct Account) (TokenResponse, error) {
	access, err := signTokenFn(s, acct, TokenAccess, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	refresh, err := signTokenFn(s, acct, TokenRefresh, refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	if err := s.tokens.Save(ctx, refresh, acct.ID, refreshTokenTTL); err != nil {
		return TokenResponse{}, fmt.Errorf("save refresh token: %w", err)
	}

	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

// ValidateRefreshToken consumes token and returns its account.
func (s *Service) ValidateRefreshToken(ctx context.Context, token string) (Account, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return Account{}, err
	}
	if claims.Type != TokenRefresh {
		return Account{}, ErrRefreshInvalid
	}

	userID, err := s.tokens.Take(ctx, token)
	if err != nil || userID != claims.UserID {
		return Account{}, ErrRefreshInvalid
	}
	acct, ok := s.byID[userID]
	if !ok {
		return Account{}, ErrRefreshInvalid
	}
	return acct, nil
}

func (s *Service) ValidateAccessToken(token string) (*Claims, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Type != TokenAccess {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

var signTokenFn = (*Service).signToken

func (s *Service) signToken(acct Account, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: acct.ID,
		Role:   acct.Role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	return parseClaims(s.secret, token)
}

func parseClaims(secret []byte, token string) (*Claims, error) {
	parsed, err := parseClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

var parseClaimsFn = jwt.ParseWithClaims
