package service

import (
	"context"
	"errors"
	"fmt"
	"portfolio-ai-go/internal/config"
	"portfolio-ai-go/internal/model"
	"portfolio-ai-go/internal/repository"
	"portfolio-ai-go/pkg/llm"
	"portfolio-ai-go/pkg/log"
	"portfolio-ai-go/pkg/mailer"
	"time"
)

// ErrGenerationTimeout 表示邮件草稿生成超过了时限。
var ErrGenerationTimeout = errors.New("email generation timed out")

// generationTimeout 限制单次草稿生成的耗时。
const generationTimeout = 25 * time.Second

// emailSystemPrompt 是邮件草稿生成的固定指令。
const emailSystemPrompt = `You are an AI email assistant. Generate a professional email based on the following prompt.
The email should be well-structured, clear, and maintain a professional tone.

Format the email with proper greeting, body, and signature.
No explanation needed, just generate the email.
Keep the language natural but professional.`

// EmailService 定义了邮件草稿生成与投递的操作。
type EmailService interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Send(ctx context.Context, fromEmail, subject, body string) error
}

type emailService struct {
	llmClient  llm.Client
	mailClient mailer.Client
	emailRepo  repository.EmailRepository
}

// NewEmailService 创建一个新的 EmailService 实例。
func NewEmailService(llmClient llm.Client, mailClient mailer.Client, emailRepo repository.EmailRepository) EmailService {
	return &emailService{
		llmClient:  llmClient,
		mailClient: mailClient,
		emailRepo:  emailRepo,
	}
}

// Generate 生成一封邮件草稿，超时返回 ErrGenerationTimeout。
func (s *emailService) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	temperature := 0.2
	maxTokens := 10000
	content, err := s.llmClient.ChatCompletion(ctx, []llm.Message{
		{Role: "system", Content: emailSystemPrompt},
		{Role: "user", Content: prompt},
	}, &llm.GenerationParams{Temperature: &temperature, MaxTokens: &maxTokens})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrGenerationTimeout
		}
		return "", fmt.Errorf("failed to generate email: %w", err)
	}
	return content, nil
}

// Send 把访客邮件投递到站长邮箱并落库留档。
func (s *emailService) Send(ctx context.Context, fromEmail, subject, body string) error {
	deliveryID, err := s.mailClient.Send(ctx, mailer.Email{
		From:    config.Conf.Mail.From,
		To:      config.Conf.Mail.To,
		Subject: subject,
		Text:    body,
		ReplyTo: fromEmail,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	record := &model.EmailRecord{
		DeliveryID: deliveryID,
		FromEmail:  fromEmail,
		Subject:    subject,
		Body:       body,
	}
	if err := s.emailRepo.Create(record); err != nil {
		// 投递已经成功，落库失败只记录日志
		log.Errorf("[EmailService] 保存邮件记录失败: %v", err)
	}
	return nil
}
