package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// MustGetUserID extracts user_id injected by SessionAuth. On a miss it
// writes a 401 and returns false; the caller should just return.
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, "user_id")
}

// MustGetUserName extracts user_name injected by SessionAuth.
func MustGetUserName(c *gin.Context) (string, bool) {
	return mustGetString(c, "user_name")
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, 101, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 101, "not authenticated")
		return "", false
	}
	return s, true
}
