package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/weixing2014/twitter-clone/db"
	"github.com/weixing2014/twitter-clone/model"
)

const (
	TokenKey = "authToken"
	UserKey  = "user"
)

type AuthConfig struct {
	SessionNotRequired bool
	ProfileNotRequired bool
}

// Auth verifies the firebase bearer token and loads the local profile into
// the request context. Depending on config, a missing session or a session
// without a profile row either passes through or aborts.
func Auth(userDB db.UserDatabase, authClient *auth.Client, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := bearerToken(c)
		if !ok {
			if config.SessionNotRequired {
				return
			}
			abortUnauthorized(c, "no bearer token in authorization header")
			return
		}

		token, err := authClient.VerifyIDToken(c, rawToken)
		if err != nil {
			if config.SessionNotRequired {
				return
			}
			abortUnauthorized(c, "invalid token")
			return
		}
		c.Set(TokenKey, token)

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "database error",
			})
			c.Abort()
			return
		}
		if user == nil {
			if config.ProfileNotRequired {
				return
			}
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
			return
		}
		c.Set(UserKey, user)
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if strings.Index(header, "Bearer ") != 0 || len(header) < 8 {
		return "", false
	}
	return header[7:], true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
	c.Abort()
}

// MustGetToken assumes the route required a session
func MustGetToken(c *gin.Context) *auth.Token {
	token, _ := c.Get(TokenKey)
	return token.(*auth.Token)
}

// GetToken returns nil when the request carried no valid session
func GetToken(c *gin.Context) *auth.Token {
	token, ok := c.Get(TokenKey)
	if !ok {
		return nil
	}
	return token.(*auth.Token)
}

// MustGetUser assumes the route required a profile
func MustGetUser(c *gin.Context) *model.User {
	user, _ := c.Get(UserKey)
	return user.(*model.User)
}

// GetUser returns nil for anonymous requests or sessions without a profile
func GetUser(c *gin.Context) *model.User {
	user, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	return user.(*model.User)
}
