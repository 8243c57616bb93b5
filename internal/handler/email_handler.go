package handler

import (
	"errors"
	"net/http"
	"portfolio-ai-go/internal/service"
	"portfolio-ai-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// EmailHandler 处理邮件草稿生成与投递的请求。
type EmailHandler struct {
	emailService service.EmailService
}

// NewEmailHandler 创建一个新的 EmailHandler。
func NewEmailHandler(emailService service.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

type generateEmailRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Generate 根据描述生成一封邮件草稿。超时返回 504。
func (h *EmailHandler) Generate(c *gin.Context) {
	var req generateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	content, err := h.emailService.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, service.ErrGenerationTimeout) {
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timed out. The email generation is taking too long.",
			})
			return
		}
		log.Errorf("生成邮件草稿失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"generatedContent": content})
}

type sendEmailRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Send 把访客留言投递到站长邮箱。
func (h *EmailHandler) Send(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.emailService.Send(c.Request.Context(), req.Email, req.Subject, req.Message); err != nil {
		log.Errorf("投递邮件失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}
