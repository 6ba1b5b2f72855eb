package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	subscriptionKey string
}

func NewHandler(subscriptionKey string) *Handler {
	return &Handler{subscriptionKey: subscriptionKey}
}

type TokenRequest struct {
	SubscriptionKey string `json:"subscription_key" binding:"required"`
	Client          string `json:"client"`
}

// IssueToken exchanges the shared subscription key for a bearer token.
func (h *Handler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.subscriptionKey == "" ||
		subtle.ConstantTimeCompare([]byte(req.SubscriptionKey), []byte(h.subscriptionKey)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid subscription key"})
		return
	}

	client := req.Client
	if client == "" {
		client = "default"
	}
	token, err := GenerateJWT(client)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(TokenTTL.Seconds()),
	})
}
