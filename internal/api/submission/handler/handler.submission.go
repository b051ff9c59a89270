package submissionhdl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/base/handler"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/api/middleware"
	submissiondto "github.com/CarolZhiLi/GB-quiz-portal/internal/api/submission/dto"
	submissionsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/submission/service"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/global"
)

// SubmissionHandler xử lý request gửi thay đổi câu hỏi
type SubmissionHandler struct {
	SubmissionService *submissionsvc.SubmissionService
}

// NewSubmissionHandler tạo mới SubmissionHandler
func NewSubmissionHandler(ctx context.Context) (*SubmissionHandler, error) {
	submissionService, err := submissionsvc.NewSubmissionService(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create submission service: %v", err)
	}
	return &SubmissionHandler{SubmissionService: submissionService}, nil
}

// Submit nhận một loạt draft và xử lý theo vai trò của người gửi:
// người duyệt ghi trực tiếp, vai trò còn lại vào staging chờ duyệt
func (h *SubmissionHandler) Submit(c fiber.Ctx) error {
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

	rs, ok := middleware.GetRoleState(c)
	if !ok {
		basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		return nil
	}

	var input submissiondto.SubmitInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		return nil
	}
	if err := global.Validate.Struct(&input); err != nil {
		basehdl.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Dữ liệu submit không hợp lệ: %v", err),
			common.StatusBadRequest,
			nil,
		))
		return nil
	}

	result, err := h.SubmissionService.Submit(c.Context(), rs, input)
	basehdl.HandleResponse(c, result, err)
	return nil
}
