// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"portfolio-ai-go/internal/model"

	"gorm.io/gorm"
)

// ChatLogRepository 接口定义了对话日志的持久化操作。
type ChatLogRepository interface {
	Create(chatLog *model.ChatLog) error
	FindWithPagination(offset, limit int) ([]model.ChatLog, int64, error)
	FindBySessionID(sessionID string) ([]model.ChatLog, error)
}

// chatLogRepository 是 ChatLogRepository 接口的 GORM 实现。
type chatLogRepository struct {
	db *gorm.DB
}

// NewChatLogRepository 创建一个新的 ChatLogRepository 实例。
func NewChatLogRepository(db *gorm.DB) ChatLogRepository {
	return &chatLogRepository{db: db}
}

// Create 在数据库中创建一条对话日志记录。
func (r *chatLogRepository) Create(chatLog *model.ChatLog) error {
	return r.db.Create(chatLog).Error
}

// FindWithPagination 从数据库中分页检索对话日志。
// 它返回日志列表、总记录数和可能发生的错误。
func (r *chatLogRepository) FindWithPagination(offset, limit int) ([]model.ChatLog, int64, error) {
	var logs []model.ChatLog
	var total int64

	db := r.db.Model(&model.ChatLog{})

	// 首先计算总记录数
	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	// 然后根据偏移量和限制获取当前页的数据，最新的排在前面
	err = db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// FindBySessionID 返回某个会话的全部对话日志，按时间正序。
func (r *chatLogRepository) FindBySessionID(sessionID string) ([]model.ChatLog, error) {
	var logs []model.ChatLog
	err := r.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&logs).Error
	return logs, err
}
