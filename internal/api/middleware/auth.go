package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gabadev/furduncinho047-api/internal/api/handler/v1/response"
	"github.com/gabadev/furduncinho047-api/internal/domain"
	"github.com/gabadev/furduncinho047-api/internal/pkg/jwthelper"
)

const (
	// SessionCookieName carries the signed session token on browser clients.
	// API clients may send the same token as a Bearer header instead.
	SessionCookieName = "furduncinho_session"

	ContextKeyUserID = "userID"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects unauthenticated requests with 401.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := a.parseRequestToken(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized())
			ctx.Abort()

			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Next()
	}
}

// OptionalJWT attaches the user when a valid session is present but lets
// anonymous requests through. Used by /auth/me.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if claims, ok := a.parseRequestToken(ctx); ok {
			ctx.Set(ContextKeyUserID, claims.UserID)
		}

		ctx.Next()
	}
}

func (a *Authenticator) parseRequestToken(ctx *gin.Context) (*jwthelper.UserClaims, bool) {
	tokenString, err := ctx.Cookie(SessionCookieName)
	if err != nil || tokenString == "" {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return nil, false
		}
		tokenString = strings.TrimPrefix(header, "Bearer ")
	}

	claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
	if err != nil {
		return nil, false
	}

	return claims, true
}

type RoleChecker interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RequireAdmin re-reads the user's role from storage on every request, so a
// demotion takes effect immediately rather than when the token expires.
// 403 for authenticated non-admins, distinct from the 401 of VerifyJWT.
func RequireAdmin(svc RoleChecker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint(ContextKeyUserID)
		if userID == 0 {
			response.RenderErr(ctx, response.ErrUnauthorized())
			ctx.Abort()

			return
		}

		user, err := svc.GetUser(ctx.Request.Context(), userID)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized())
			ctx.Abort()

			return
		}

		if !user.IsAdmin() {
			response.RenderErr(ctx, response.ErrPermissionDenied())
			ctx.Abort()

			return
		}

		ctx.Next()
	}
}

// GetUserID returns the authenticated user's id from the request context.
func GetUserID(ctx *gin.Context) uint {
	return ctx.GetUint(ContextKeyUserID)
}
