// Package generation sinh câu hỏi trắc nghiệm qua chat completion API.
package generation

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/CarolZhiLi/GB-quiz-portal/config"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/logger"
)

// OptionCount là số đáp án bắt buộc của mỗi câu hỏi sinh ra
const OptionCount = 4

// GeneratedQuestion là một câu hỏi đã qua kiểm tra cấu trúc, sẵn sàng đưa vào staging
type GeneratedQuestion struct {
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Level        int      `json:"level"`
	UserType     []string `json:"usertype"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Result gom các câu hỏi hợp lệ và số câu bị loại do sai cấu trúc
type Result struct {
	Questions []GeneratedQuestion `json:"questions"`
	Dropped   int                 `json:"dropped"`
}

// Generator gọi chat completion API để sinh câu hỏi
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator tạo Generator từ cấu hình hệ thống
func NewGenerator(cfg *config.Configuration) (*Generator, error) {
	if cfg == nil || cfg.GenerationAPIKey == "" {
		return nil, common.NewError(common.ErrCodeExternalService,
			"Chưa cấu hình GENERATION_API_KEY cho dịch vụ sinh câu hỏi",
			common.StatusServiceUnavailable, nil)
	}

	clientConfig := openai.DefaultConfig(cfg.GenerationAPIKey)
	if cfg.GenerationBaseURL != "" {
		clientConfig.BaseURL = cfg.GenerationBaseURL
	}

	model := cfg.GenerationModel
	if model == "" {
		model = openai.GPT4o
	}

	return &Generator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
	}, nil
}

// systemPrompt cố định vai trò và định dạng đầu ra cho model
const systemPrompt = "You are an expert quiz question generator. " +
	"Generate multiple choice questions with exactly 4 options each. " +
	"Respond with a JSON array only, no prose. Each element has the shape " +
	`{"questionText": string, "options": [string, string, string, string], "correctIndex": int, "explanation": string}.`

// buildUserPrompt dựng prompt từ yêu cầu của người soạn
func buildUserPrompt(prompt string, count, level int, userTypes []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d multiple choice quiz questions at difficulty level %d (1 = easiest, 4 = hardest).\n", count, level)
	if len(userTypes) > 0 {
		fmt.Fprintf(&b, "Target audience: %s.\n", strings.Join(userTypes, ", "))
	}
	b.WriteString("Topic and instructions:\n")
	b.WriteString(strings.TrimSpace(prompt))
	return b.String()
}

// Generate gọi model sinh count câu hỏi theo prompt, level và đối tượng người dùng.
// Câu trả về sai cấu trúc (không đủ 4 đáp án, correctIndex ngoài biên, thiếu nội dung)
// bị loại và đếm vào Dropped thay vì làm hỏng cả lượt sinh.
func (g *Generator) Generate(ctx context.Context, prompt string, count, level int, userTypes []string) (*Result, error) {
	log := logger.GetLogger("generation")

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(prompt, count, level, userTypes)},
		},
	})
	if err != nil {
		return nil, common.NewError(common.ErrCodeExternalService,
			fmt.Sprintf("Lỗi gọi dịch vụ sinh câu hỏi: %v", err),
			common.StatusBadGateway, nil)
	}
	if len(resp.Choices) == 0 {
		return nil, common.NewError(common.ErrCodeExternalService,
			"Dịch vụ sinh câu hỏi không trả về kết quả nào",
			common.StatusBadGateway, nil)
	}

	result, err := ParseQuestions(resp.Choices[0].Message.Content, level, userTypes)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"model":     g.model,
		"requested": count,
		"returned":  len(result.Questions),
		"dropped":   result.Dropped,
	}).Info("🤖 [GENERATION] Đã sinh câu hỏi")

	return result, nil
}
