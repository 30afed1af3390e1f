package endpoint

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/kbukum/identity-backend/auth"
	"github.com/kbukum/identity-backend/errors"
	"github.com/kbukum/identity-backend/server"
)

const bearerPrefix = "Bearer "

// Authenticator is the facade the auth endpoints call.
type Authenticator interface {
	Login(ctx context.Context, creds auth.Credentials) (*auth.LoginResult, *errors.AppError)
	GetUserFromToken(ctx context.Context, token string) (*auth.Profile, *errors.AppError)
}

// Login handles POST /auth/login.
func Login(svc Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds, appErr := decodeCredentials(c.Request)
		if appErr != nil {
			server.RespondWithError(c, appErr)
			return
		}
		result, appErr := svc.Login(c.Request.Context(), creds)
		if appErr != nil {
			server.RespondWithError(c, appErr)
			return
		}
		server.RespondOK(c, result)
	}
}

// RequireUser resolves the bearer token of the request to a profile and
// stores it in the request context for the next handler.
func RequireUser(svc Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, appErr := BearerToken(c.GetHeader("Authorization"))
		if appErr != nil {
			server.RespondWithError(c, appErr)
			return
		}
		profile, appErr := svc.GetUserFromToken(c.Request.Context(), token)
		if appErr != nil {
			server.RespondWithError(c, appErr)
			return
		}
		c.Request = c.Request.WithContext(auth.ContextWithProfile(c.Request.Context(), profile))
		c.Next()
	}
}

// Me handles GET /me. It must run after RequireUser.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := auth.ProfileFromContext(c.Request.Context())
		if !ok {
			server.RespondWithError(c, errors.Unauthorized(""))
			return
		}
		server.RespondOK(c, auth.MeResponse{User: *profile})
	}
}

// BearerToken extracts the token from an Authorization header value.
// The scheme is matched case-sensitively.
func BearerToken(header string) (string, *errors.AppError) {
	v := strings.TrimSpace(header)
	if v == "" {
		return "", errors.Unauthorized("Missing Authorization header")
	}
	if !strings.HasPrefix(v, bearerPrefix) {
		return "", errors.Unauthorized("Invalid Authorization header")
	}
	token := strings.TrimSpace(strings.TrimPrefix(v, bearerPrefix))
	if token == "" {
		return "", errors.Unauthorized("Missing bearer token")
	}
	return token, nil
}

func decodeCredentials(r *http.Request) (auth.Credentials, *errors.AppError) {
	var creds auth.Credentials
	if r.Body == nil {
		return creds, errors.BadRequest("Missing JSON body")
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return creds, errors.New(errors.ErrCodeBadRequest, "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return creds, errors.BadRequest("Invalid JSON body")
	}
	if strings.TrimSpace(string(body)) == "" {
		return creds, errors.BadRequest("Missing JSON body")
	}
	if err := binding.JSON.BindBody(body, &creds); err != nil {
		return creds, errors.BadRequest("Invalid JSON body")
	}
	return creds, nil
}
