// Package websearch 提供了一个与 Tavily 搜索服务交互的客户端。
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"portfolio-ai-go/internal/config"
	"strings"
)

// Client 定义了网页搜索客户端的接口。
type Client interface {
	// Search 对给定查询执行一次搜索，返回拼接好的结果文本。
	Search(ctx context.Context, query string) (string, error)
}

type tavilyClient struct {
	cfg    config.SearchConfig
	client *http.Client
}

// NewClient 创建一个新的搜索客户端实例。
func NewClient(cfg config.SearchConfig) Client {
	return &tavilyClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search 调用搜索接口并把结果整理成一段可直接塞进 prompt 的文本。
func (c *tavilyClient) Search(ctx context.Context, query string) (string, error) {
	maxResults := c.cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}
	reqBody := searchRequest{
		APIKey:     c.cfg.APIKey,
		Query:      query,
		MaxResults: maxResults,
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/search", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call search api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("search api returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}

	var b strings.Builder
	for i, r := range searchResp.Results {
		b.WriteString(fmt.Sprintf("[%d] %s\n%s\n(%s)\n\n", i+1, r.Title, r.Content, r.URL))
	}
	return strings.TrimSpace(b.String()), nil
}
