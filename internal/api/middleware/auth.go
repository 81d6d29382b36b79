package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/jwt"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/redis"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// Context keys populated by SessionAuth.
const (
	CtxUserID     = "user_id"
	CtxUserName   = "user_name"
	CtxRole       = "role"
	CtxDepartment = "department"
	CtxTokenID    = "token_id"
	CtxTokenExp   = "token_exp"
)

// SessionAuth extracts and verifies the session token from
// Authorization: Bearer <token>, then checks the revocation list.
// rdb may be nil: revocation then degrades to plain expiry.
func SessionAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, jwtMgr)
		if !ok {
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsSessionRevoked(c.Request.Context(), claims.ID)
			// a revocation-store error fails open, same as a nil client
			if err == nil && revoked {
				response.Unauthorized(c, 102, "session revoked")
				c.Abort()
				return
			}
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserName, claims.UserName)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxDepartment, claims.Department)
		c.Set(CtxTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(CtxTokenExp, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func parseBearer(c *gin.Context, jwtMgr *jwt.Manager) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c, 101, "missing authorization header")
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Unauthorized(c, 101, "malformed authorization header")
		c.Abort()
		return nil, false
	}

	claims, err := jwtMgr.ParseToken(parts[1])
	if err != nil {
		response.Unauthorized(c, 102, "session token invalid or expired")
		c.Abort()
		return nil, false
	}
	return claims, true
}

// RoleAuth allows only the listed roles past.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists {
			response.Unauthorized(c, 101, "not authenticated")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 103, "insufficient role")
		c.Abort()
	}
}
