// Package service 包含了应用的业务逻辑层。
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"portfolio-ai-go/internal/cache"
	"portfolio-ai-go/internal/classifier"
	"portfolio-ai-go/internal/composer"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/internal/model"
	"portfolio-ai-go/internal/repository"
	"portfolio-ai-go/pkg/events"
	"portfolio-ai-go/pkg/kafka"
	"portfolio-ai-go/pkg/llm"
	"portfolio-ai-go/pkg/log"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// ChatService 定义了聊天操作的接口。
type ChatService interface {
	Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResult, error)
	StreamResponse(ctx context.Context, req model.ChatRequest, ws *websocket.Conn, shouldStop func() bool) error
}

// EventPublisher 把一轮完成的对话投递到消息队列，供异步落库。
type EventPublisher interface {
	PublishChatTurn(event events.ChatTurnEvent) error
}

type kafkaEventPublisher struct{}

// NewKafkaEventPublisher 返回基于 Kafka 生产者的事件发布器。
func NewKafkaEventPublisher() EventPublisher {
	return kafkaEventPublisher{}
}

func (kafkaEventPublisher) PublishChatTurn(event events.ChatTurnEvent) error {
	return kafka.PublishChatTurn(event)
}

// searchKeywords 是触发网页搜索的关键词集合，按子串匹配。
var searchKeywords = []string{
	"current", "latest", "recent", "news", "today", "update", "weather",
	"price", "stock", "event", "happened", "when did", "when will",
	"how much is", "what is the", "who is", "where is",
	"2023", "2024", "2025",
	"sui", "solana", "erebrus", "netsepio", "search", "deepseek",
}

type chatService struct {
	retrieval        RetrievalService
	llmClient        llm.Client
	searchClient     SearchClient
	contextCache     cache.Cache
	conversationRepo repository.ConversationRepository
	publisher        EventPublisher
}

// SearchClient 是网页搜索客户端的最小接口。
type SearchClient interface {
	Search(ctx context.Context, query string) (string, error)
}

// NewChatService 创建一个新的 ChatService 实例。
func NewChatService(retrieval RetrievalService, llmClient llm.Client, searchClient SearchClient, contextCache cache.Cache, conversationRepo repository.ConversationRepository, publisher EventPublisher) ChatService {
	return &chatService{
		retrieval:        retrieval,
		llmClient:        llmClient,
		searchClient:     searchClient,
		contextCache:     contextCache,
		conversationRepo: conversationRepo,
		publisher:        publisher,
	}
}

// Chat 协调一轮完整的问答：分类、缓存、检索、可选网页搜索、补全与落库。
func (s *chatService) Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResult, error) {
	start := time.Now()
	prompt := req.Prompt
	tag := classifier.Classify(prompt)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	// 1. 组装消息（内部解析上下文，缓存命中则跳过检索）并调用补全
	messages, searchPerformed, payload := s.prepareMessages(ctx, req, sessionID, tag)
	answer, err := s.llmClient.ChatCompletion(ctx, messages, nil)
	if err != nil {
		// 畸形响应整体失败，传输层错误降级为道歉文案
		if errors.Is(err, llm.ErrMalformedResponse) {
			return nil, err
		}
		log.Errorf("[ChatService] 补全调用失败，返回道歉文案: %v", err)
		// 道歉文案同样附带结构化数据块，前端的数据卡片照常渲染
		fallback := config.Conf.Chat.Apology
		if payload != nil {
			fallback = fallback + "\n\n```json\n" + string(payload) + "\n```"
		}
		return &model.ChatResult{
			Response:           fallback,
			IsSearchPerformed:  searchPerformed,
			HasStructuredData:  payload != nil,
			StructuredDataType: composer.PayloadType(tag),
			SessionID:          sessionID,
		}, nil
	}

	// 2. 附加结构化数据块
	final := answer
	if payload != nil {
		final = final + "\n\n```json\n" + string(payload) + "\n```"
	}

	// 3. 保存历史并发布分析事件
	// 使用后台上下文，因为即使原始请求被取消，我们也希望保存成功生成的答案
	s.saveTurn(context.Background(), sessionID, req, prompt, final)
	s.publishTurn(sessionID, prompt, answer, tag, searchPerformed, time.Since(start))

	return &model.ChatResult{
		Response:           final,
		IsSearchPerformed:  searchPerformed,
		HasStructuredData:  payload != nil,
		StructuredDataType: composer.PayloadType(tag),
		SessionID:          sessionID,
	}, nil
}

// StreamResponse 协调同一套流程，但通过 websocket 流式下发分块。
func (s *chatService) StreamResponse(ctx context.Context, req model.ChatRequest, ws *websocket.Conn, shouldStop func() bool) error {
	start := time.Now()
	prompt := req.Prompt
	tag := classifier.Classify(prompt)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	messages, searchPerformed, payload := s.prepareMessages(ctx, req, sessionID, tag)

	// 拦截 websocket writer 以捕获完整答案，并包装为 JSON 分块
	answerBuilder := &strings.Builder{}
	interceptor := &wsWriterInterceptor{conn: ws, writer: answerBuilder, shouldStop: shouldStop}

	if err := s.llmClient.StreamChatMessages(ctx, messages, nil, interceptor); err != nil {
		return err
	}

	// 结构化数据块作为单独一个分块补发
	if payload != nil {
		block := "\n\n```json\n" + string(payload) + "\n```"
		if err := interceptor.WriteMessage(websocket.TextMessage, []byte(block)); err != nil {
			return err
		}
	}
	sendCompletion(ws, sessionID, searchPerformed, composer.PayloadType(tag))

	fullAnswer := answerBuilder.String()
	if len(fullAnswer) > 0 {
		s.saveTurn(context.Background(), sessionID, req, prompt, fullAnswer)
		s.publishTurn(sessionID, prompt, fullAnswer, tag, searchPerformed, time.Since(start))
	}
	return nil
}

// prepareMessages 完成补全调用前的全部准备：历史、检索上下文、网页搜索与结构化数据。
func (s *chatService) prepareMessages(ctx context.Context, req model.ChatRequest, sessionID, tag string) ([]llm.Message, bool, []byte) {
	prompt := req.Prompt

	// 历史以 Redis 为准；新会话用客户端带来的消息做种子
	history, err := s.conversationRepo.GetConversationHistory(ctx, sessionID)
	if err != nil {
		log.Errorf("[ChatService] 读取对话历史失败: %v", err)
		history = []model.ChatMessage{}
	}
	if len(history) == 0 && len(req.Messages) > 0 {
		history = req.Messages
	}

	// 结构化数据块
	var payload []byte
	if tag != "" {
		payload, err = composer.Compose(tag)
		if err != nil {
			log.Warnf("[ChatService] 组装结构化数据失败, tag: %s, err: %v", tag, err)
			payload = nil
		}
	}

	// 向量检索带短时缓存：命中直接复用上下文，未命中才查 ES
	contextText, hit := s.contextCache.Get(prompt)
	if !hit {
		// 长问题多取一个分块
		topK := 3
		if len([]rune(prompt)) > 50 {
			topK = 4
		}
		passages, retrieveErr := s.retrieval.SearchProfile(ctx, prompt, topK)
		if retrieveErr != nil {
			log.Errorf("[ChatService] 检索个人资料失败: %v", retrieveErr)
			passages = nil
		}
		contextText = strings.Join(passages, "\n\n")
		if retrieveErr == nil {
			s.contextCache.Put(prompt, contextText)
		}
	} else {
		log.Infof("[ChatService] 检索上下文缓存命中, session: %s", sessionID)
	}

	// 需要时效信息时附加网页搜索结果；searchPerformed 反映判定结果而非调用成败
	searchPerformed := needsWebSearch(prompt)
	searchResults := ""
	if searchPerformed {
		searchResults, err = s.searchClient.Search(ctx, prompt)
		if err != nil {
			log.Errorf("[ChatService] 网页搜索失败: %v", err)
			searchResults = ""
		}
	}

	systemMsg := s.buildSystemMessage(tag, contextText, payload != nil)
	messages := composeMessages(systemMsg, history, prompt)
	messages = spliceSearchContext(messages, searchResults)
	return messages, searchPerformed, payload
}

// needsWebSearch 判断问题是否需要时效性信息。
func needsWebSearch(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, kw := range searchKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (s *chatService) buildSystemMessage(tag, contextText string, hasPayload bool) string {
	var sys strings.Builder
	sys.WriteString(config.Conf.Chat.Persona)
	if hasPayload {
		sys.WriteString("\n\nA structured data card will be rendered alongside your reply, so keep the text short and conversational instead of repeating every detail.")
	}
	if contextText != "" {
		sys.WriteString("\n\nRelevant information about me:\n")
		sys.WriteString(contextText)
	}
	if directive := topicDirective(tag); directive != "" {
		sys.WriteString("\n\n")
		sys.WriteString(directive)
	}
	if config.Conf.Chat.Rules != "" {
		sys.WriteString("\n\n")
		sys.WriteString(config.Conf.Chat.Rules)
	}
	return sys.String()
}

// topicDirective 按话题类型给模型补充措辞指引。
func topicDirective(tag string) string {
	switch composer.PayloadType(tag) {
	case "projects":
		return "The visitor is asking about my projects. Mention them by name and keep the descriptions brief."
	case "contact":
		return "The visitor wants contact details. Share them naturally and invite them to reach out."
	case "links":
		return "The visitor wants links. Point them to the right place without listing every URL in prose."
	case "skills":
		return "The visitor is asking about my skills. Group them naturally rather than dumping a raw list."
	case "experience":
		return "The visitor is asking about my work experience. Summarize the role and what I work on."
	case "education":
		return "The visitor is asking about my education. Keep it to the degree and the institution."
	case "awards":
		return "The visitor is asking about my achievements. Mention the hackathon wins with a little enthusiasm."
	}
	return ""
}

// composeMessages 确保 system 消息位于首位：历史中残留的 system 会被替换。
func composeMessages(systemMsg string, history []model.ChatMessage, prompt string) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: "system", Content: systemMsg})
	for _, m := range history {
		if m.Role == "system" {
			continue
		}
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: "user", Content: prompt})
	return msgs
}

// spliceSearchContext 把网页搜索结果作为 system 消息插入到最后一条 user 消息之前。
func spliceSearchContext(msgs []llm.Message, searchResults string) []llm.Message {
	if searchResults == "" {
		return msgs
	}
	searchMsg := llm.Message{
		Role:    "system",
		Content: "Here are some up-to-date web search results you can draw on:\n" + searchResults,
	}
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" {
			out := make([]llm.Message, 0, len(msgs)+1)
			out = append(out, msgs[:i]...)
			out = append(out, searchMsg)
			out = append(out, msgs[i:]...)
			return out
		}
	}
	return append(msgs, searchMsg)
}

// saveTurn 把本轮问答写回 Redis 历史。失败只记录日志，不影响响应。
func (s *chatService) saveTurn(ctx context.Context, sessionID string, req model.ChatRequest, question, answer string) {
	history, err := s.conversationRepo.GetConversationHistory(ctx, sessionID)
	if err != nil {
		log.Errorf("[ChatService] 保存历史前读取失败: %v", err)
		return
	}
	if len(history) == 0 && len(req.Messages) > 0 {
		history = req.Messages
	}
	history = append(history,
		model.ChatMessage{Role: "user", Content: question, Timestamp: time.Now()},
		model.ChatMessage{Role: "assistant", Content: answer, Timestamp: time.Now()},
	)
	if err := s.conversationRepo.UpdateConversationHistory(ctx, sessionID, history); err != nil {
		log.Errorf("[ChatService] 保存对话历史失败: %v", err)
	}
}

// publishTurn 发布分析事件。失败只记录日志。
func (s *chatService) publishTurn(sessionID, question, answer, tag string, searchPerformed bool, latency time.Duration) {
	event := events.ChatTurnEvent{
		EventID:         fmt.Sprintf("%s-%d", sessionID, time.Now().UnixNano()),
		SessionID:       sessionID,
		Question:        question,
		Answer:          answer,
		Topic:           tag,
		SearchPerformed: searchPerformed,
		LatencyMS:       latency.Milliseconds(),
		CreatedAt:       time.Now(),
	}
	if err := s.publisher.PublishChatTurn(event); err != nil {
		log.Errorf("[ChatService] 发布对话事件失败: %v", err)
	}
}

// wsWriterInterceptor 是对 websocket.Conn 的封装，用于捕获写入的消息。
type wsWriterInterceptor struct {
	conn       *websocket.Conn
	writer     *strings.Builder
	shouldStop func() bool
}

// WriteMessage 满足 llm.MessageWriter 接口。
func (w *wsWriterInterceptor) WriteMessage(messageType int, data []byte) error {
	if w.shouldStop != nil && w.shouldStop() {
		// 停止标志生效：跳过下发
		return nil
	}
	w.writer.Write(data)
	// 将原始分块包装成 {"chunk":"..."}
	payload := map[string]string{"chunk": string(data)}
	b, _ := json.Marshal(payload)
	return w.conn.WriteMessage(messageType, b)
}

// sendCompletion 发送完成通知 JSON
func sendCompletion(ws *websocket.Conn, sessionID string, searchPerformed bool, structuredDataType string) {
	notif := map[string]interface{}{
		"type":               "completion",
		"status":             "finished",
		"sessionId":          sessionID,
		"isSearchPerformed":  searchPerformed,
		"structuredDataType": structuredDataType,
		"timestamp":          time.Now().UnixMilli(),
	}
	b, _ := json.Marshal(notif)
	_ = ws.WriteMessage(websocket.TextMessage, b)
}
