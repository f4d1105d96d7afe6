package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Betaniacelis/tiendaonline/internal/dto"
)

// ContextUserID is the echo context key holding the authenticated user id.
const ContextUserID = "user_id"

var ErrInvalidToken = errors.New("invalid bearer token")

// TokenVerifier turns a bearer credential into a stable user id. The
// production implementation checks the identity provider's JWT; tests
// plug in fakes.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type jwtVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}

// Auth rejects requests without a valid bearer credential before any
// outbound call is attempted.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "No autorizado"})
			}

			userID, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "No autorizado"})
			}

			c.Set(ContextUserID, userID)
			return next(c)
		}
	}
}

// UserID reads the authenticated user id set by Auth.
func UserID(c echo.Context) string {
	userID, _ := c.Get(ContextUserID).(string)
	return userID
}
