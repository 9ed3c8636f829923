package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/platemind/backend/internal/models"
	"github.com/platemind/backend/internal/types"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("email already registered")
	ErrGoogleOnlyAccount  = errors.New("this account uses Google Sign-In")
)

// AuthService issues and validates session tokens and manages user accounts.
type AuthService struct {
	db             *gorm.DB
	jwtSecret      string
	googleClientID string
	tokenInfoURL   string
	httpClient     *http.Client
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(db *gorm.DB, jwtSecret, googleClientID string) *AuthService {
	return &AuthService{
		db:             db,
		jwtSecret:      jwtSecret,
		googleClientID: googleClientID,
		tokenInfoURL:   googleTokenInfoURL,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates a user with an email and password and returns a session token.
func (s *AuthService) Register(name, email, password string) (string, *models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return "", nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Login authenticates a user by email and password and returns a session token.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if user.PasswordHash == "" {
		return "", nil, ErrGoogleOnlyAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// googleTokenInfo is the subset of Google's tokeninfo response we use.
type googleTokenInfo struct {
	Aud     string `json:"aud"`
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// LoginWithGoogle verifies a Google ID token against the tokeninfo endpoint,
// creates the user on first login, and returns a session token.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (string, *models.User, error) {
	info, err := s.verifyGoogleToken(ctx, idToken)
	if err != nil {
		return "", nil, fmt.Errorf("google authentication failed: %w", err)
	}

	var user models.User
	err = s.db.Where("google_id = ?", info.Sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:        uuid.New(),
			Name:      info.Name,
			Email:     info.Email,
			GoogleID:  info.Sub,
			AvatarURL: info.Picture,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return "", nil, err
		}
	} else if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

func (s *AuthService) verifyGoogleToken(ctx context.Context, idToken string) (*googleTokenInfo, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", s.tokenInfoURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}

	if s.googleClientID != "" && info.Aud != s.googleClientID {
		return nil, errors.New("token audience mismatch")
	}
	if info.Email == "" {
		return nil, errors.New("email not present in token")
	}
	return &info, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: user.ID,
		Name:   user.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a session token.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
