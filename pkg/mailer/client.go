// Package mailer 提供了一个与邮件投递服务（Resend 风格 API）交互的客户端。
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"portfolio-ai-go/internal/config"
)

// Email 描述一封待投递的邮件。
type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	ReplyTo string `json:"reply_to,omitempty"`
}

// Client 定义了邮件投递客户端的接口。
type Client interface {
	// Send 投递一封邮件，返回服务端生成的投递 ID。
	Send(ctx context.Context, email Email) (string, error)
}

type resendClient struct {
	cfg    config.MailConfig
	client *http.Client
}

// NewClient 创建一个新的邮件客户端实例。
func NewClient(cfg config.MailConfig) Client {
	return &resendClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send 调用投递接口发送邮件。
func (c *resendClient) Send(ctx context.Context, email Email) (string, error) {
	reqBytes, err := json.Marshal(email)
	if err != nil {
		return "", fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/emails", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call mail api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("mail api returned status %s, body: %s", resp.Status, string(bodyBytes))
	}

	var sendResp sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sendResp); err != nil {
		return "", fmt.Errorf("failed to decode mail response: %w", err)
	}
	return sendResp.ID, nil
}
