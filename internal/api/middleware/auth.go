package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sparkslearn/console/internal/api/handler/v1/response"
	"github.com/sparkslearn/console/internal/ctxutil"
	"github.com/sparkslearn/console/internal/pkg/jwthelper"
)

// CtxKeyOperatorID is the gin context key holding the authenticated operator id.
const CtxKeyOperatorID = "operatorID"

var errMissingToken = errors.New("missing bearer token")

type Authenticator struct {
	key []byte
}

func NewAuthenticator(key string) *Authenticator {
	return &Authenticator{key: []byte(key)}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := bearerToken(ctx.GetHeader("Authorization"))
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))

			return
		}

		operatorID, _, err := jwthelper.ParseToken(a.key, tokenString)
		if err != nil {
			err = fmt.Errorf("VerifyJWT -> jwthelper.ParseToken -> %w", err)
			response.RenderErr(ctx, response.ErrUnauthorized(err))

			return
		}

		ctx.Set(CtxKeyOperatorID, operatorID)
		ctx.Request = ctx.Request.WithContext(ctxutil.WithOperatorID(ctx.Request.Context(), operatorID))

		ctx.Next()
	}
}

func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errMissingToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingToken
	}

	return token, nil
}
