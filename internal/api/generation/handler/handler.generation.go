package generationhdl

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/base/handler"
	generationdto "github.com/CarolZhiLi/GB-quiz-portal/internal/api/generation/dto"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/generation"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/global"
)

// GenerationHandler xử lý request sinh câu hỏi
type GenerationHandler struct {
	Generator *generation.Generator
}

// NewGenerationHandler tạo mới GenerationHandler từ cấu hình hệ thống
func NewGenerationHandler() (*GenerationHandler, error) {
	generator, err := generation.NewGenerator(global.ServerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create question generator: %v", err)
	}
	return &GenerationHandler{Generator: generator}, nil
}

// Generate sinh câu hỏi theo prompt và trả về các câu đã qua kiểm tra cấu trúc.
// Câu hỏi sinh ra chưa được lưu: người soạn đưa chúng vào staging qua submission.
func (h *GenerationHandler) Generate(c fiber.Ctx) error {
	defer func() {
		if r := recover(); r != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()

	var input generationdto.GenerateInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}
	if err := global.Validate.Struct(&input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Dữ liệu sinh câu hỏi không hợp lệ: %v", err),
			common.StatusBadRequest,
			nil,
		))
		return nil
	}

	result, err := h.Generator.Generate(c.Context(), input.Prompt, input.Count, input.Level, input.UserType)
	basehdl.HandleResponse(c, result, err)
	return nil
}
