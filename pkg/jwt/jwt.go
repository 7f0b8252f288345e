package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fichadoradamathias/Restaurante2/config"
)

var (
	ErrTokenExpired = errors.New("el token expiró")
	ErrTokenInvalid = errors.New("token inválido")
)

// Claims declaraciones JWT de la aplicación
// La identidad ya autenticada (id, rol, oficina) viaja en el token;
// los servicios de negocio no vuelven a validar credenciales.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	OfficeID  *uint  `json:"office_id,omitempty"`
	TokenType string `json:"token_type"` // "access" | "refresh"
	jwtv5.RegisteredClaims
}

// Manager administrador de tokens JWT
type Manager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager crea el administrador de JWT
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken genera un access token
func (m *Manager) GenerateAccessToken(userID uint, role string, officeID *uint) (string, error) {
	return m.generate(userID, role, officeID, "access", m.accessTokenTTL)
}

// GenerateRefreshToken genera un refresh token
func (m *Manager) GenerateRefreshToken(userID uint, role string, officeID *uint) (string, error) {
	return m.generate(userID, role, officeID, "refresh", m.refreshTokenTTL)
}

func (m *Manager) generate(userID uint, role string, officeID *uint, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		OfficeID:  officeID,
		TokenType: tokenType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    "pedidos-comedor",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken parsea y valida un token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
