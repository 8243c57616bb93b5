package model

import "time"

// ChatLog 代表一轮已完成问答的落库记录，由 Kafka 消费者写入。
type ChatLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	EventID         string    `gorm:"uniqueIndex;size:64;not null" json:"eventId"`
	SessionID       string    `gorm:"index;size:64;not null" json:"sessionId"`
	Question        string    `gorm:"type:text;not null" json:"question"`
	Answer          string    `gorm:"type:text;not null" json:"answer"`
	Topic           string    `gorm:"size:32" json:"topic"`
	SearchPerformed bool      `json:"searchPerformed"`
	LatencyMS       int64     `json:"latencyMs"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}

// EmailRecord 代表一封通过站点发出的邮件。
type EmailRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DeliveryID string    `gorm:"size:64" json:"deliveryId"`
	FromEmail  string    `gorm:"size:255;not null" json:"fromEmail"`
	Subject    string    `gorm:"size:255;not null" json:"subject"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (EmailRecord) TableName() string {
	return "email_records"
}
