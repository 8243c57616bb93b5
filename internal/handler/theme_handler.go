package handler

import (
	"net/http"
	"portfolio-ai-go/internal/service"
	"portfolio-ai-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ThemeHandler 处理主题定制脚本的生成请求。
type ThemeHandler struct {
	themeService service.ThemeService
}

// NewThemeHandler 创建一个新的 ThemeHandler。
func NewThemeHandler(themeService service.ThemeService) *ThemeHandler {
	return &ThemeHandler{themeService: themeService}
}

type themeRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// Generate 根据自然语言描述生成修改站点外观的 JavaScript。
func (h *ThemeHandler) Generate(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	script, err := h.themeService.GenerateThemeScript(c.Request.Context(), req.Prompt)
	if err != nil {
		log.Errorf("生成主题脚本失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate theme changes",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": script})
}
