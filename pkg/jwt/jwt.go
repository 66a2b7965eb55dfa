package jwt

import (
	"errors"
	"time"

	"doctor-portal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is the minimal claim set a session carries about the signed-in doctor.
type Identity struct {
	DoctorID   uuid.UUID
	DoctorCode string
	Name       string
	Email      string
}

type Claims struct {
	DoctorID   uuid.UUID `json:"doctor_id"`
	DoctorCode string    `json:"doctor_code"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{
		DoctorID:   c.DoctorID,
		DoctorCode: c.DoctorCode,
		Name:       c.Name,
		Email:      c.Email,
	}
}

type JWTService struct {
	config config.JWTConfig
	now    func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

// GenerateSessionToken signs a session token for the given identity. It returns the
// signed token and its expiry.
func (s *JWTService) GenerateSessionToken(identity Identity) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.config.Expiry)
	claims := Claims{
		DoctorID:   identity.DoctorID,
		DoctorCode: identity.DoctorCode,
		Name:       identity.Name,
		Email:      identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   identity.DoctorID.String(),
			Issuer:    s.config.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signedToken, expiresAt, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.DoctorID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *JWTService) GetExpiry() time.Duration {
	return s.config.Expiry
}
