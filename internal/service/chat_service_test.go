package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"portfolio-ai-go/internal/cache"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/internal/model"
	"portfolio-ai-go/pkg/events"
	"portfolio-ai-go/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRetrieval struct {
	passages []string
	err      error
	calls    int
}

func (f *fakeRetrieval) SearchProfile(ctx context.Context, query string, topK int) ([]string, error) {
	f.calls++
	return f.passages, f.err
}

func (f *fakeRetrieval) SearchTheme(ctx context.Context, query string, topK int) ([]string, error) {
	return f.passages, f.err
}

type fakeLLM struct {
	answer   string
	err      error
	calls    int
	messages []llm.Message
}

func (f *fakeLLM) ChatCompletion(ctx context.Context, messages []llm.Message, gen *llm.GenerationParams) (string, error) {
	f.calls++
	f.messages = messages
	return f.answer, f.err
}

func (f *fakeLLM) StreamChatMessages(ctx context.Context, messages []llm.Message, gen *llm.GenerationParams, writer llm.MessageWriter) error {
	f.calls++
	f.messages = messages
	return f.err
}

type fakeSearch struct {
	results string
	err     error
	calls   int
}

func (f *fakeSearch) Search(ctx context.Context, query string) (string, error) {
	f.calls++
	return f.results, f.err
}

type fakeConvRepo struct {
	histories map[string][]model.ChatMessage
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{histories: make(map[string][]model.ChatMessage)}
}

func (f *fakeConvRepo) GetConversationHistory(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	return f.histories[sessionID], nil
}

func (f *fakeConvRepo) UpdateConversationHistory(ctx context.Context, sessionID string, messages []model.ChatMessage) error {
	f.histories[sessionID] = messages
	return nil
}

func (f *fakeConvRepo) ListSessionIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.histories))
	for id := range f.histories {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakePublisher struct {
	published []events.ChatTurnEvent
}

func (f *fakePublisher) PublishChatTurn(event events.ChatTurnEvent) error {
	f.published = append(f.published, event)
	return nil
}

func setupChatConfig(t *testing.T) {
	t.Helper()
	old := config.Conf
	config.Conf.Chat = config.ChatConfig{
		Persona: "You are Rakesh, a software developer from Pune.",
		Rules:   "Answer in first person. Stay on topic.",
		Apology: "I'm sorry, I'm having trouble responding right now. Please try again in a moment.",
	}
	t.Cleanup(func() { config.Conf = old })
}

func newTestChatService(llmClient llm.Client, search SearchClient, convRepo *fakeConvRepo, publisher *fakePublisher) ChatService {
	return NewChatService(
		&fakeRetrieval{passages: []string{"Rakesh builds web and blockchain products.", "He interns at Lazarus Network."}},
		llmClient,
		search,
		cache.NewMemoryCache(30*time.Minute),
		convRepo,
		publisher,
	)
}

func TestChatSkillsFlow(t *testing.T) {
	setupChatConfig(t)
	llmClient := &fakeLLM{answer: "I work across the stack, from React to Solidity."}
	publisher := &fakePublisher{}
	convRepo := newFakeConvRepo()
	svc := newTestChatService(llmClient, &fakeSearch{}, convRepo, publisher)

	result, err := svc.Chat(context.Background(), model.ChatRequest{
		Prompt:    "what technologies do you know",
		SessionID: "s1",
	})
	require.NoError(t, err)

	// 回答末尾附带结构化数据块
	assert.True(t, result.HasStructuredData)
	assert.Equal(t, "skills", result.StructuredDataType)
	assert.Contains(t, result.Response, "```json")
	assert.Contains(t, result.Response, `"type": "skills"`)
	assert.False(t, result.IsSearchPerformed)
	assert.Equal(t, "s1", result.SessionID)

	// system 消息在首位，包含人设与检索上下文
	require.NotEmpty(t, llmClient.messages)
	assert.Equal(t, "system", llmClient.messages[0].Role)
	assert.Contains(t, llmClient.messages[0].Content, "You are Rakesh")
	assert.Contains(t, llmClient.messages[0].Content, "Relevant information about me:")
	assert.Contains(t, llmClient.messages[0].Content, "Lazarus Network")

	// 历史已落库，分析事件已发布
	assert.Len(t, convRepo.histories["s1"], 2)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "skills", publisher.published[0].Topic)
}

func TestChatWebSearchSplice(t *testing.T) {
	setupChatConfig(t)
	llmClient := &fakeLLM{answer: "Here is what is new."}
	search := &fakeSearch{results: "[1] Sui mainnet update\nDetails here."}
	svc := newTestChatService(llmClient, search, newFakeConvRepo(), &fakePublisher{})

	result, err := svc.Chat(context.Background(), model.ChatRequest{
		Prompt:    "any latest sui ecosystem updates",
		SessionID: "s2",
	})
	require.NoError(t, err)
	assert.True(t, result.IsSearchPerformed)
	assert.Equal(t, 1, search.calls)

	// 搜索结果作为 system 消息插在最后一条 user 消息之前
	msgs := llmClient.messages
	require.GreaterOrEqual(t, len(msgs), 3)
	last := msgs[len(msgs)-1]
	beforeLast := msgs[len(msgs)-2]
	assert.Equal(t, "user", last.Role)
	assert.Equal(t, "system", beforeLast.Role)
	assert.Contains(t, beforeLast.Content, "Sui mainnet update")
}

func TestChatNoSearchForPlainQuestion(t *testing.T) {
	setupChatConfig(t)
	search := &fakeSearch{results: "should not be used"}
	svc := newTestChatService(&fakeLLM{answer: "ok"}, search, newFakeConvRepo(), &fakePublisher{})

	result, err := svc.Chat(context.Background(), model.ChatRequest{
		Prompt:    "tell me about your education",
		SessionID: "s3",
	})
	require.NoError(t, err)
	assert.False(t, result.IsSearchPerformed)
	assert.Equal(t, 0, search.calls)
}

func TestChatApologyOnTransportError(t *testing.T) {
	setupChatConfig(t)
	llmClient := &fakeLLM{err: errors.New("connection refused")}
	svc := newTestChatService(llmClient, &fakeSearch{}, newFakeConvRepo(), &fakePublisher{})

	result, err := svc.Chat(context.Background(), model.ChatRequest{
		Prompt:    "hello there",
		SessionID: "s4",
	})
	// 传输层错误降级为道歉文案，不报错
	require.NoError(t, err)
	assert.Equal(t, config.Conf.Chat.Apology, result.Response)
	assert.False(t, result.HasStructuredData)
}

func TestChatApologyKeepsStructuredData(t *testing.T) {
	setupChatConfig(t)
	llmClient := &fakeLLM{err: errors.New("connection refused")}
	svc := newTestChatService(llmClient, &fakeSearch{}, newFakeConvRepo(), &fakePublisher{})

	result, err := svc.Chat(context.Background(), model.ChatRequest{
		Prompt:    "what technologies do you know",
		SessionID: "s4b",
	})
	require.NoError(t, err)

	// 补全失败时数据卡片照常渲染：道歉文案后仍附带结构化数据块
	assert.True(t, strings.HasPrefix(result.Response, config.Conf.Chat.Apology))
	assert.Contains(t, result.Response, "```json")
	assert.True(t, result.HasStructuredData)
	assert.Equal(t, "skills", result.StructuredDataType)
}

func TestChatMalformedResponseFails(t *testing.T) {
	setupChatConfig(t)
	llmClient := &fakeLLM{err: llm.ErrMalformedResponse}
	svc := newTestChatService(llmClient, &fakeSearch{}, newFakeConvRepo(), &fakePublisher{})

	_, err := svc.Chat(context.Background(), model.ChatRequest{
		Prompt:    "hello there",
		SessionID: "s5",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrMalformedResponse)
}

func TestChatCachesRetrievedContext(t *testing.T) {
	setupChatConfig(t)
	retrieval := &fakeRetrieval{passages: []string{"Rakesh interns at Lazarus Network."}}
	llmClient := &fakeLLM{answer: "fresh answer"}
	search := &fakeSearch{results: "[1] Sui mainnet update"}
	convRepo := newFakeConvRepo()
	publisher := &fakePublisher{}
	svc := NewChatService(retrieval, llmClient, search, cache.NewMemoryCache(30*time.Minute), convRepo, publisher)

	req := model.ChatRequest{Prompt: "any latest sui ecosystem updates", SessionID: "s6"}
	first, err := svc.Chat(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Chat(context.Background(), req)
	require.NoError(t, err)

	// 缓存只覆盖向量检索；补全与网页搜索每次都要执行
	assert.Equal(t, 1, retrieval.calls)
	assert.Equal(t, 2, llmClient.calls)
	assert.Equal(t, 2, search.calls)
	assert.True(t, first.IsSearchPerformed)
	assert.True(t, second.IsSearchPerformed)

	// 第二次的 system 消息仍携带缓存的检索上下文
	require.NotEmpty(t, llmClient.messages)
	assert.Contains(t, llmClient.messages[0].Content, "Lazarus Network")

	// 每一轮都落历史、发事件
	assert.Len(t, convRepo.histories["s6"], 4)
	assert.Len(t, publisher.published, 2)
}

func TestChatSearchFailureStillReportsHeuristic(t *testing.T) {
	setupChatConfig(t)
	search := &fakeSearch{err: errors.New("tavily unavailable")}
	llmClient := &fakeLLM{answer: "best effort answer"}
	svc := newTestChatService(llmClient, search, newFakeConvRepo(), &fakePublisher{})

	result, err := svc.Chat(context.Background(), model.ChatRequest{
		Prompt:    "any latest sui ecosystem updates",
		SessionID: "s6b",
	})
	require.NoError(t, err)

	// 标志反映搜索判定结果，调用失败不改写
	assert.True(t, result.IsSearchPerformed)
	assert.Equal(t, 1, search.calls)

	// 失败时不插入搜索结果消息：只有 system 与 user 两条
	require.Len(t, llmClient.messages, 2)
	assert.Equal(t, "system", llmClient.messages[0].Role)
	assert.Equal(t, "user", llmClient.messages[1].Role)
}

func TestChatSeedsHistoryFromClientMessages(t *testing.T) {
	setupChatConfig(t)
	llmClient := &fakeLLM{answer: "as I said, mostly web development"}
	svc := newTestChatService(llmClient, &fakeSearch{}, newFakeConvRepo(), &fakePublisher{})

	_, err := svc.Chat(context.Background(), model.ChatRequest{
		Prompt:    "and what about backend",
		SessionID: "s7",
		Messages: []model.ChatMessage{
			{Role: "user", Content: "what do you do"},
			{Role: "assistant", Content: "I build web apps"},
		},
	})
	require.NoError(t, err)

	// 客户端带来的历史出现在 system 之后、当前问题之前
	msgs := llmClient.messages
	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "what do you do", msgs[1].Content)
	assert.Equal(t, "I build web apps", msgs[2].Content)
	assert.Equal(t, "and what about backend", msgs[3].Content)
}

func TestComposeMessagesReplacesStaleSystem(t *testing.T) {
	history := []model.ChatMessage{
		{Role: "system", Content: "stale system prompt"},
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}
	msgs := composeMessages("fresh system prompt", history, "next question")

	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "fresh system prompt", msgs[0].Content)
	for _, m := range msgs[1:] {
		assert.NotEqual(t, "system", m.Role)
	}
}

func TestNeedsWebSearch(t *testing.T) {
	assert.True(t, needsWebSearch("What is the latest news?"))
	assert.True(t, needsWebSearch("price of SOL today"))
	assert.True(t, needsWebSearch("tell me about erebrus"))
	assert.False(t, needsWebSearch("tell me about your projects"))
	assert.False(t, needsWebSearch("hello"))
}

func TestSpliceSearchContextWithoutUserMessage(t *testing.T) {
	msgs := []llm.Message{{Role: "system", Content: "sys"}}
	out := spliceSearchContext(msgs, "results")
	require.Len(t, out, 2)
	assert.Equal(t, "system", out[1].Role)
	assert.True(t, strings.Contains(out[1].Content, "results"))
}
