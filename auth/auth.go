package auth

import (
	"cafeapi/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exchanges the moderator api key for a short-lived token pair.
type Handler struct {
	keys         *KeyVerifier
	tokens       *utils.TokenIssuer
	deniedStatus int
}

func NewHandler(keys *KeyVerifier, tokens *utils.TokenIssuer, deniedStatus int) *Handler {
	return &Handler{keys: keys, tokens: tokens, deniedStatus: deniedStatus}
}

func (h *Handler) Login(c *gin.Context) {
	type Request struct {
		APIKey string `form:"api_key" json:"api_key" binding:"required"`
	}

	var req Request
	if err := c.ShouldBind(&req); err != nil || !h.keys.Verify(req.APIKey) {
		c.JSON(h.deniedStatus, gin.H{"error": utils.NotAllowedMessage})
		return
	}

	access, refresh, err := h.tokens.GenerateTokens(utils.ModeratorRole)
	if err != nil {
		c.JSON(h.deniedStatus, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	oldRefreshToken := c.PostForm("refresh_token")
	if oldRefreshToken == "" {
		c.JSON(h.deniedStatus, gin.H{"error": "Refresh token is required"})
		return
	}

	access, refresh, err := h.tokens.RefreshTokens(oldRefreshToken)
	if err != nil {
		c.JSON(h.deniedStatus, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}
