// Package events 定义了服务内部通过消息队列流转的分析事件。
package events

import "time"

// ChatTurnEvent 表示一轮已完成的对话，用于异步落库做统计分析。
type ChatTurnEvent struct {
	EventID         string    `json:"event_id"`
	SessionID       string    `json:"session_id"`
	Question        string    `json:"question"`
	Answer          string    `json:"answer"`
	Topic           string    `json:"topic"`
	SearchPerformed bool      `json:"search_performed"`
	LatencyMS       int64     `json:"latency_ms"`
	CreatedAt       time.Time `json:"created_at"`
}
