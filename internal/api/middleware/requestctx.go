package middleware

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/sparkslearn/console/internal/ctxutil"
)

// PropagateRequestID copies the id set by requestid.New into the request context
// so services can stamp it on audit entries. Mount it after requestid.New.
func PropagateRequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if id := requestid.Get(ctx); id != "" {
			ctx.Request = ctx.Request.WithContext(ctxutil.WithRequestID(ctx.Request.Context(), id))
		}

		ctx.Next()
	}
}
