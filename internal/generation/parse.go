package generation

import (
	"encoding/json"
	"strings"

	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
)

// rawQuestion là câu hỏi như model trả về, trước khi kiểm tra cấu trúc
type rawQuestion struct {
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// StripCodeFences gỡ markdown code fence (``` hoặc ```json) bao quanh nội dung nếu có
func StripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Bỏ tên ngôn ngữ ngay sau fence mở (ví dụ ```json)
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(trimmed[:idx])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{[") {
			trimmed = trimmed[idx+1:]
		}
	}

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

// ParseQuestions phân tích nội dung model trả về thành danh sách câu hỏi hợp lệ.
// Chấp nhận cả mảng JSON thuần và object {"questions": [...]}. Câu sai cấu trúc
// bị loại và đếm vào Dropped; nội dung không phải JSON là lỗi của dịch vụ ngoài.
func ParseQuestions(content string, level int, userTypes []string) (*Result, error) {
	payload := StripCodeFences(content)

	var raws []rawQuestion
	if err := json.Unmarshal([]byte(payload), &raws); err != nil {
		var wrapper struct {
			Questions []rawQuestion `json:"questions"`
		}
		if err2 := json.Unmarshal([]byte(payload), &wrapper); err2 != nil {
			return nil, common.NewError(common.ErrCodeExternalService,
				"Dịch vụ sinh câu hỏi trả về nội dung không phải JSON hợp lệ",
				common.StatusBadGateway, nil)
		}
		raws = wrapper.Questions
	}

	result := &Result{Questions: make([]GeneratedQuestion, 0, len(raws))}
	for _, raw := range raws {
		q, ok := validateRaw(raw, level, userTypes)
		if !ok {
			result.Dropped++
			continue
		}
		result.Questions = append(result.Questions, q)
	}
	return result, nil
}

// validateRaw kiểm tra cấu trúc một câu hỏi thô: nội dung không rỗng,
// đúng 4 đáp án không rỗng, correctIndex trong biên
func validateRaw(raw rawQuestion, level int, userTypes []string) (GeneratedQuestion, bool) {
	var zero GeneratedQuestion

	text := strings.TrimSpace(raw.QuestionText)
	if text == "" {
		return zero, false
	}
	if len(raw.Options) != OptionCount {
		return zero, false
	}

	options := make([]string, 0, OptionCount)
	for _, opt := range raw.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return zero, false
		}
		options = append(options, opt)
	}

	if raw.CorrectIndex == nil || *raw.CorrectIndex < 0 || *raw.CorrectIndex >= OptionCount {
		return zero, false
	}

	return GeneratedQuestion{
		QuestionText: text,
		Options:      options,
		CorrectIndex: *raw.CorrectIndex,
		Level:        level,
		UserType:     userTypes,
		Explanation:  strings.TrimSpace(raw.Explanation),
	}, true
}
