// Package repository 提供了数据访问层的实现。
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

// ConversationRepository 定义了对话历史记录的操作接口。
type ConversationRepository interface {
	GetConversationHistory(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	UpdateConversationHistory(ctx context.Context, sessionID string, messages []model.ChatMessage) error
	ListSessionIDs(ctx context.Context) ([]string, error)
}

type redisConversationRepository struct {
	redisClient *redis.Client
}

// NewConversationRepository 创建一个新的 ConversationRepository 实例。
func NewConversationRepository(redisClient *redis.Client) ConversationRepository {
	return &redisConversationRepository{redisClient: redisClient}
}

// GetConversationHistory 从 Redis 获取对话历史记录。
func (r *redisConversationRepository) GetConversationHistory(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	key := fmt.Sprintf("conversation:%s", sessionID)
	jsonData, err := r.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return []model.ChatMessage{}, nil // No history yet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation history: %w", err)
	}
	var messages []model.ChatMessage
	err = json.Unmarshal([]byte(jsonData), &messages)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation history: %w", err)
	}
	return messages, nil
}

// UpdateConversationHistory 在 Redis 中更新对话历史记录。
func (r *redisConversationRepository) UpdateConversationHistory(ctx context.Context, sessionID string, messages []model.ChatMessage) error {
	key := fmt.Sprintf("conversation:%s", sessionID)
	// 只保留最近的若干条
	limit := config.Conf.Chat.HistoryLimit
	if limit <= 0 {
		limit = 20
	}
	if len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	jsonData, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation history: %w", err)
	}
	err = r.redisClient.Set(ctx, key, jsonData, 7*24*time.Hour).Err()
	if err != nil {
		return fmt.Errorf("failed to set conversation history: %w", err)
	}
	return nil
}

// ListSessionIDs 扫描 conversation:* 返回当前存活的会话 ID 列表。
func (r *redisConversationRepository) ListSessionIDs(ctx context.Context) ([]string, error) {
	keys, err := r.redisClient.Keys(ctx, "conversation:*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan conversation keys: %w", err)
	}
	sessionIDs := make([]string, 0, len(keys))
	for _, k := range keys {
		var sid string
		if _, scanErr := fmt.Sscanf(k, "conversation:%s", &sid); scanErr != nil {
			continue
		}
		sessionIDs = append(sessionIDs, sid)
	}
	return sessionIDs, nil
}
