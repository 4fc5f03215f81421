package middleware

import "github.com/gin-gonic/gin"

// tenantIDKey is the key used to store the resolved tenant (company) ID in
// the Gin context. Using a custom type prevents collisions.
const tenantIDKey = contextKey("tenantID")

// userIDKey is the key used to store the acting user's ID in the Gin context.
const userIDKey = contextKey("userID")

// TenantResolutionMiddleware resolves the tenant from the X-Company-ID
// header. Requests without one are rejected before reaching any handler.
func TenantResolutionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader("X-Company-ID")
		if companyID == "" {
			c.AbortWithStatusJSON(400, gin.H{"error": "X-Company-ID header is required"})
			return
		}
		c.Set(string(tenantIDKey), companyID)

		// The acting user is optional; default keeps audit fields populated.
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = "system"
		}
		c.Set(string(userIDKey), userID)

		c.Next()
	}
}

// GetTenantIDFromContext retrieves the resolved tenant ID from the Gin context.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(tenantIDKey))
	if !exists {
		return "", false
	}
	tenantID, ok := val.(string)
	if !ok {
		return "", false
	}
	return tenantID, true
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}
	userID, ok := val.(string)
	if !ok {
		return "", false
	}
	return userID, true
}
