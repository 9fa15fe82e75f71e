package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/tempohq/tempo-backend-go/internal/domain/user"
)

// Service verifies access tokens issued by the external auth service.
// This backend never issues production tokens itself; GenerateAccessToken
// exists for tests and local development against the shared secret.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateAccessToken(usr user.User, expiration time.Duration) (token string, expiresAt int64, err error)
}

type JWTService struct {
	secretKey string
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		secretKey: secretKey,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(usr user.User, expiration time.Duration) (string, int64, error) {
	expiresAt := time.Now().Add(expiration).Unix()

	claims := map[string]interface{}{
		"user_id":  usr.ID,
		"email":    usr.Email,
		"username": usr.Username,
		"role":     string(usr.Role),
		"type":     "access",
		"exp":      expiresAt,
	}
	if usr.FullName != nil {
		claims["full_name"] = *usr.FullName
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}
