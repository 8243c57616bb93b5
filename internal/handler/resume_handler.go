package handler

import (
	"net/http"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/pkg/log"
	"portfolio-ai-go/pkg/storage"
	"time"

	"github.com/gin-gonic/gin"
)

// resumeURLExpiry 是简历下载链接的有效期。
const resumeURLExpiry = 15 * time.Minute

// ResumeHandler 处理简历下载链接的签发。
type ResumeHandler struct{}

// NewResumeHandler 创建一个新的 ResumeHandler。
func NewResumeHandler() *ResumeHandler {
	return &ResumeHandler{}
}

// GetDownloadURL 为对象存储中的简历签发一个临时下载链接。
func (h *ResumeHandler) GetDownloadURL(c *gin.Context) {
	url, err := storage.GetPresignedURL(config.Conf.MinIO.BucketName, config.Conf.MinIO.ResumeObject, resumeURLExpiry)
	if err != nil {
		log.Errorf("签发简历下载链接失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate resume link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       url,
		"expiresIn": resumeURLExpiry.String(),
	})
}
