package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/empatt-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type tokenInfoKey struct{}

// TokenInfo identifies the verified token of the current request.
type TokenInfo struct {
	JTI       string
	AdminID   string
	Username  string
	ExpiresAt time.Time
}

// TokenFromContext returns the token info stored by AuthRequired.
func TokenFromContext(ctx context.Context) (TokenInfo, bool) {
	info, ok := ctx.Value(tokenInfoKey{}).(TokenInfo)
	return info, ok
}

// AuthRequired rejects requests without a valid, unrevoked access token. It
// must run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			revoked, err := jwtService.IsTokenRevoked(r.Context(), token.JwtID())
			if err != nil {
				slog.Error("failed to check token blacklist", "error", err)
				response.InternalServerError(w, "An unexpected error occurred")
				return
			}
			if revoked {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			info := TokenInfo{
				JTI:       token.JwtID(),
				ExpiresAt: token.Expiration(),
			}
			info.AdminID, _ = claims["admin_id"].(string)
			info.Username, _ = claims["username"].(string)

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tokenInfoKey{}, info)))
		}
		return http.HandlerFunc(hfn)
	}
}
