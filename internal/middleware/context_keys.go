package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated principal's ID in the
// Gin and request contexts.
const userIDKey = contextKey("userID")

// authMethodKey marks how a request was authenticated ("api_key" when the
// service key middleware accepted it), letting the JWT middleware skip it.
const authMethodKey = "authMethod"

// ServicePrincipalID is the actor recorded for requests authenticated with the
// collaborator service key rather than an operator token.
const ServicePrincipalID = "service"

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context, falling back to the request context for values stored by the auth
// middleware. It returns the user ID and whether it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(userIDKey)); exists {
		userID, ok := v.(string)
		return userID, ok
	}
	if v := c.Request.Context().Value(userIDKey); v != nil {
		userID, ok := v.(string)
		return userID, ok
	}
	return "", false
}
