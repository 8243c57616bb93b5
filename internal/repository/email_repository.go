package repository

import (
	"portfolio-ai-go/internal/model"

	"gorm.io/gorm"
)

// EmailRepository 接口定义了邮件记录的持久化操作。
type EmailRepository interface {
	Create(record *model.EmailRecord) error
	FindWithPagination(offset, limit int) ([]model.EmailRecord, int64, error)
}

// emailRepository 是 EmailRepository 接口的 GORM 实现。
type emailRepository struct {
	db *gorm.DB
}

// NewEmailRepository 创建一个新的 EmailRepository 实例。
func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepository{db: db}
}

// Create 在数据库中创建一条邮件记录。
func (r *emailRepository) Create(record *model.EmailRecord) error {
	return r.db.Create(record).Error
}

// FindWithPagination 从数据库中分页检索邮件记录。
func (r *emailRepository) FindWithPagination(offset, limit int) ([]model.EmailRecord, int64, error) {
	var records []model.EmailRecord
	var total int64

	db := r.db.Model(&model.EmailRecord{})

	err := db.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	err = db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
