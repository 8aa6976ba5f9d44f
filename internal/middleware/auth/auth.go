package auth

import (
	"context"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

// UIDKey is the echo context key carrying the authenticated user id.
const UIDKey = "uid"

// TokenVerifier checks a Firebase ID token and returns the UID.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// FirebaseVerifier verifies tokens against Firebase Auth.
type FirebaseVerifier struct {
	client *fbauth.Client
}

var _ TokenVerifier = (*FirebaseVerifier)(nil)

func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (*FirebaseVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	tok, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return tok.UID, nil
}

// Middleware rejects requests without a valid
// "Authorization: Bearer <idToken>" header and stores the UID on the
// request context.
func Middleware(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			idToken := strings.TrimPrefix(header, "Bearer ")

			uid, err := verifier.Verify(c.Request().Context(), idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(UIDKey, uid)
			return next(c)
		}
	}
}

// UID returns the authenticated user id set by Middleware.
func UID(c echo.Context) string {
	uid, _ := c.Get(UIDKey).(string)
	return uid
}
