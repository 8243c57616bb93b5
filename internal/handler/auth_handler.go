package handler

import (
	"fmt"
	"net/http"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/pkg/log"
	"portfolio-ai-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthHandler 处理访客 token 的签发。
type AuthHandler struct {
	jwtManager *token.JWTManager
}

// NewAuthHandler 创建一个新的 AuthHandler。
func NewAuthHandler(jwtManager *token.JWTManager) *AuthHandler {
	return &AuthHandler{jwtManager: jwtManager}
}

type issueTokenRequest struct {
	Type      string `json:"type"`
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
}

// IssueToken 为前端会话签发一个短期访客 token。
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req issueTokenRequest
	// 请求体可为空，所有字段都是可选的
	_ = c.ShouldBindJSON(&req)

	tokenString, err := h.jwtManager.GenerateVisitorToken(req.Type, req.UserID, req.SessionID)
	if err != nil {
		log.Errorf("签发访客 token 失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     tokenString,
		"expiresIn": fmt.Sprintf("%dm", config.Conf.JWT.VisitorTokenExpireMinutes),
		"message":   "Token generated successfully",
	})
}
