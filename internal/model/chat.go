// Package model 包含了应用的数据模型定义。
package model

import "time"

// ChatMessage 代表存储在 Redis 中的单条对话消息。
type ChatMessage struct {
	Role      string    `json:"role"` // "user" 或 "assistant" 或 "system"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ChatRequest 定义了聊天接口的请求体。
type ChatRequest struct {
	Prompt    string        `json:"prompt" binding:"required"`
	Messages  []ChatMessage `json:"messages"`
	SessionID string        `json:"sessionId"`
}

// ChatResult 定义了聊天接口的响应体。
type ChatResult struct {
	Response           string `json:"response"`
	IsSearchPerformed  bool   `json:"isSearchPerformed"`
	HasStructuredData  bool   `json:"hasStructuredData"`
	StructuredDataType string `json:"structuredDataType,omitempty"`
	SessionID          string `json:"sessionId"`
}
