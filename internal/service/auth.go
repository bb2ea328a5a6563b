package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jamaney/card-backend/internal/models"
	"github.com/jamaney/card-backend/internal/types"
)

// TokenTTL is how long an issued session stays valid.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid external session")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// AuthService issues and validates session tokens and manages accounts.
// The Redis client is optional: without it logout revocation is skipped
// and clients rely on discarding their token.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	redis     *redis.Client
	verifyURL string
	client    *http.Client
}

func NewAuthService(db *gorm.DB, jwtSecret string, redisClient *redis.Client, verifyURL string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		redis:     redisClient,
		verifyURL: verifyURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Register creates an account and returns it with a fresh session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login verifies credentials and returns the account with a session token.
// The error is deliberately identical for unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// sessionData is the identity payload returned by the external verifier.
type sessionData struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// ExchangeSession validates an external session identifier against the
// verifier, upserts the matching account by email and issues an app token.
func (s *AuthService) ExchangeSession(ctx context.Context, sessionID string) (*models.User, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.verifyURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("session verifier unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", ErrInvalidSession
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	var data sessionData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, "", fmt.Errorf("decode verifier response: %w", err)
	}
	if data.Email == "" {
		return nil, "", ErrInvalidSession
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", data.Email).First(&user).Error
	switch {
	case err == nil:
		user.Name = data.Name
		user.Picture = data.Picture
		if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
			return nil, "", err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Name:    data.Name,
			Email:   data.Email,
			Picture: data.Picture,
			// No password; this account can only sign in via the broker.
			PasswordHash: "external",
		}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, "", err
		}
	default:
		return nil, "", err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GetUser loads the account behind validated token claims.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the presented token. With Redis configured the token's id
// is denylisted until it would have expired anyway; without it this is a
// no-op and the client discards its copy.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	if s.redis == nil {
		return nil
	}
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		// Already unusable; nothing to revoke.
		return nil
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil
	}
	ttl := TokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}
	return s.redis.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

func (s *AuthService) generateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"jti":     uuid.New().String(),
		"exp":     time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken checks signature, expiry and the revocation denylist.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	jti, _ := claims["jti"].(string)

	if s.redis != nil && jti != "" {
		n, err := s.redis.Exists(context.Background(), revokedKey(jti)).Result()
		if err == nil && n > 0 {
			return nil, ErrTokenRevoked
		}
	}

	return &types.TokenClaims{UserID: userID, TokenID: jti}, nil
}

func (s *AuthService) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func revokedKey(jti string) string {
	return "auth:revoked:" + jti
}
