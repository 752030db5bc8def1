package middlewares

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"storefront/sessions"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session"
	sessionKey    = "session"
)

// Session binds the request to its view state. Requests without a valid
// session token get a fresh session, its token is sent back both as a cookie
// and in the Authorization response header.
func Session(store *sessions.Store, key []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(SessionCookie)
		if token == "" {
			token = c.GetHeader("Authorization")
		}

		sess, err := ValidateToken(token, key, store)
		if err != nil {
			if token != "" {
				log.Println(err)
			}

			sess, err = store.Create()
			if err != nil {
				log.Println(err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				c.Abort()
				return
			}

			signed, err := GenerateToken(sess.Id, key)
			if err != nil {
				log.Println(err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
				c.Abort()
				return
			}

			c.SetCookie(SessionCookie, signed, 0, "/", "", false, true)
			c.Header("Authorization", "Bearer "+signed)
		}

		SetSession(c, sess)
		c.Next()
	}
}

func ValidateToken(tokenString string, key []byte, store *sessions.Store) (*sessions.Session, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	if tokenString == "" {
		return nil, errors.New("missing-token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid-signing-method")
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid-token")
	}

	id, _ := claims["session-id"].(string)
	sess, ok := store.Get(id)
	if !ok {
		return nil, errors.New("invalid-session")
	}

	return sess, nil
}

func GenerateToken(sessionId string, key []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"session-id": sessionId,
	})
	return token.SignedString(key)
}

func SetSession(c *gin.Context, sess *sessions.Session) {
	c.Set(sessionKey, sess)
}

func CurrentSession(c *gin.Context) *sessions.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*sessions.Session)
	return sess
}
