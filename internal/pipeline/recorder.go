package pipeline

import (
	"context"
	"fmt"
	"portfolio-ai-go/internal/model"
	"portfolio-ai-go/internal/repository"
	"portfolio-ai-go/pkg/events"
	"portfolio-ai-go/pkg/log"
)

// Recorder 消费 Kafka 上的对话事件并落库到 MySQL。
type Recorder struct {
	chatLogRepo repository.ChatLogRepository
}

// NewRecorder 创建一个新的 Recorder 实例。
func NewRecorder(chatLogRepo repository.ChatLogRepository) *Recorder {
	return &Recorder{chatLogRepo: chatLogRepo}
}

// Process 实现 kafka.EventProcessor 接口。
func (r *Recorder) Process(ctx context.Context, event events.ChatTurnEvent) error {
	chatLog := &model.ChatLog{
		EventID:         event.EventID,
		SessionID:       event.SessionID,
		Question:        event.Question,
		Answer:          event.Answer,
		Topic:           event.Topic,
		SearchPerformed: event.SearchPerformed,
		LatencyMS:       event.LatencyMS,
	}
	if err := r.chatLogRepo.Create(chatLog); err != nil {
		return fmt.Errorf("保存对话日志失败: %w", err)
	}
	log.Infof("[Recorder] 对话日志已落库, EventID: %s, SessionID: %s", event.EventID, event.SessionID)
	return nil
}
