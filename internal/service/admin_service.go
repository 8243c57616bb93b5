package service

import (
	"context"
	"errors"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/internal/model"
	"portfolio-ai-go/internal/repository"
	"portfolio-ai-go/pkg/hash"
	"portfolio-ai-go/pkg/token"
)

// ErrInvalidCredentials 表示管理员用户名或密码不正确。
var ErrInvalidCredentials = errors.New("invalid username or password")

// AdminService 定义了后台管理相关的操作。
type AdminService interface {
	Login(username, password string) (string, error)
	ListChatLogs(offset, limit int) ([]model.ChatLog, int64, error)
	ListEmails(offset, limit int) ([]model.EmailRecord, int64, error)
	ListSessions(ctx context.Context) ([]string, error)
}

type adminService struct {
	jwtManager       *token.JWTManager
	chatLogRepo      repository.ChatLogRepository
	emailRepo        repository.EmailRepository
	conversationRepo repository.ConversationRepository
}

// NewAdminService 创建一个新的 AdminService 实例。
func NewAdminService(jwtManager *token.JWTManager, chatLogRepo repository.ChatLogRepository, emailRepo repository.EmailRepository, conversationRepo repository.ConversationRepository) AdminService {
	return &adminService{
		jwtManager:       jwtManager,
		chatLogRepo:      chatLogRepo,
		emailRepo:        emailRepo,
		conversationRepo: conversationRepo,
	}
}

// Login 校验管理员凭据并签发带 ADMIN 角色的 token。
func (s *adminService) Login(username, password string) (string, error) {
	if username != config.Conf.Admin.Username {
		return "", ErrInvalidCredentials
	}
	if !hash.CheckPassword(password, config.Conf.Admin.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.jwtManager.GenerateAdminToken(username)
}

// ListChatLogs 分页返回对话日志。
func (s *adminService) ListChatLogs(offset, limit int) ([]model.ChatLog, int64, error) {
	return s.chatLogRepo.FindWithPagination(offset, limit)
}

// ListEmails 分页返回邮件记录。
func (s *adminService) ListEmails(offset, limit int) ([]model.EmailRecord, int64, error) {
	return s.emailRepo.FindWithPagination(offset, limit)
}

// ListSessions 返回 Redis 中仍存活的会话 ID。
func (s *adminService) ListSessions(ctx context.Context) ([]string, error) {
	return s.conversationRepo.ListSessionIDs(ctx)
}
