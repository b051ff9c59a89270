package reviewhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/base/handler"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/api/middleware"
	reviewdto "github.com/CarolZhiLi/GB-quiz-portal/internal/api/review/dto"
	reviewsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/review/service"
	stagingmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/models"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/utility"
)

// ReviewHandler xử lý các request duyệt, từ chối, gửi lại và dọn dẹp batch
type ReviewHandler struct {
	ReviewService *reviewsvc.ReviewService
}

// NewReviewHandler tạo mới ReviewHandler
func NewReviewHandler() (*ReviewHandler, error) {
	reviewService, err := reviewsvc.NewReviewService()
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %v", err)
	}
	return &ReviewHandler{ReviewService: reviewService}, nil
}

// parseBatchID lấy và validate batch ID từ URI params
func (h *ReviewHandler) parseBatchID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("id")
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(id), nil
}

// safeHandler bọc handler với recover, giữ cùng envelope lỗi như BaseHandler
func (h *ReviewHandler) safeHandler(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// ListPending liệt kê các batch đang chờ duyệt, mới nhất trước
func (h *ReviewHandler) ListPending(c fiber.Ctx) error {
	return h.safeHandler(c, func() error {
		batches, err := h.ReviewService.BatchService.ListAllBatches(c.Context(), stagingmodels.BatchStatusPending)
		basehdl.HandleResponse(c, batches, err)
		return nil
	})
}

// Approve duyệt một batch pending và xuất bản các item của nó
func (h *ReviewHandler) Approve(c fiber.Ctx) error {
	return h.safeHandler(c, func() error {
		rs, ok := middleware.GetRoleState(c)
		if !ok {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		batchID, err := h.parseBatchID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		batch, err := h.ReviewService.ApproveBatch(c.Context(), batchID, rs)
		basehdl.HandleResponse(c, batch, err)
		return nil
	})
}

// Reject từ chối một batch pending kèm ghi chú tuỳ chọn
func (h *ReviewHandler) Reject(c fiber.Ctx) error {
	return h.safeHandler(c, func() error {
		rs, ok := middleware.GetRoleState(c)
		if !ok {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		batchID, err := h.parseBatchID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		// Body rỗng vẫn hợp lệ, note là tuỳ chọn
		var input reviewdto.RejectInput
		if len(c.Body()) > 0 {
			if err := c.Bind().Body(&input); err != nil {
				basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
				return nil
			}
		}

		batch, err := h.ReviewService.RejectBatch(c.Context(), batchID, rs, input.Note)
		basehdl.HandleResponse(c, batch, err)
		return nil
	})
}

// Resubmit đưa một batch rejected trở lại hàng chờ duyệt.
// Mở cho mọi vai trò portal; quyền trên batch (tác giả hoặc người duyệt)
// được kiểm tra lại ở service.
func (h *ReviewHandler) Resubmit(c fiber.Ctx) error {
	return h.safeHandler(c, func() error {
		rs, ok := middleware.GetRoleState(c)
		if !ok {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		batchID, err := h.parseBatchID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		// Body rỗng vẫn hợp lệ, note là tuỳ chọn
		var input reviewdto.ResubmitInput
		if len(c.Body()) > 0 {
			if err := c.Bind().Body(&input); err != nil {
				basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
				return nil
			}
		}

		batch, err := h.ReviewService.ResubmitBatch(c.Context(), batchID, rs, input.Note)
		basehdl.HandleResponse(c, batch, err)
		return nil
	})
}

// Cleanup xóa một batch đã hết hạn retention cùng các item của nó.
// Mở cho mọi vai trò portal; quyền trên batch được kiểm tra lại ở service.
func (h *ReviewHandler) Cleanup(c fiber.Ctx) error {
	return h.safeHandler(c, func() error {
		rs, ok := middleware.GetRoleState(c)
		if !ok {
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		batchID, err := h.parseBatchID(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		err = h.ReviewService.CleanupBatch(c.Context(), batchID, rs)
		basehdl.HandleResponse(c, fiber.Map{"batchId": batchID.Hex()}, err)
		return nil
	})
}
