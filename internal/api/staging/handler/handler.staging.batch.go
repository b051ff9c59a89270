package staginghdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/base/handler"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/api/middleware"
	stagingdto "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/dto"
	stagingmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/models"
	stagingsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/service"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/utility"
)

// StagingHandler xử lý các request liên quan đến staging batch và item
type StagingHandler struct {
	*basehdl.BaseHandler[stagingmodels.StagingBatch, stagingdto.BatchCreateInput, stagingdto.BatchCreateInput]
	BatchService *stagingsvc.StagingBatchService
	ItemService  *stagingsvc.StagingItemService
}

// NewStagingHandler tạo mới StagingHandler
func NewStagingHandler() (*StagingHandler, error) {
	batchService, err := stagingsvc.NewStagingBatchService()
	if err != nil {
		return nil, fmt.Errorf("failed to create staging batch service: %v", err)
	}
	itemService, err := stagingsvc.NewStagingItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create staging item service: %v", err)
	}

	hdl := &StagingHandler{BatchService: batchService, ItemService: itemService}
	hdl.BaseHandler = basehdl.NewBaseHandler[stagingmodels.StagingBatch, stagingdto.BatchCreateInput, stagingdto.BatchCreateInput](batchService.BaseServiceMongoImpl)
	return hdl, nil
}

// parseBatchID lấy và validate batch ID từ URI params
func (h *StagingHandler) parseBatchID(c fiber.Ctx) (primitive.ObjectID, error) {
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

// CreateBatch tạo một batch pending mới cho người dùng đang đăng nhập
func (h *StagingHandler) CreateBatch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		rs, ok := middleware.GetRoleState(c)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		var input stagingdto.BatchCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		batch, err := h.BatchService.CreateBatch(c.Context(), rs.UID, rs.Email, input.Source)
		h.HandleResponse(c, batch, err)
		return nil
	})
}

// AddItem thêm một item vào batch.
// Batch phải tồn tại, còn pending (hoặc rejected để tác giả soạn lại)
// và thuộc về người gọi trừ khi người gọi là người duyệt.
func (h *StagingHandler) AddItem(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		rs, ok := middleware.GetRoleState(c)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		batchID, err := h.parseBatchID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		batch, err := h.BatchService.FindOneById(c.Context(), batchID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := stagingsvc.CanMutateBatch(batch, rs.UID, rs.CanReview()); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input stagingdto.ItemCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		item := stagingmodels.StagingBatchItem{
			QuestionText: input.QuestionText,
			Options:      input.Options,
			CorrectIndex: input.CorrectIndex,
			Level:        input.Level,
			UserType:     input.UserType,
			Explanation:  input.Explanation,
			ImageURL:     input.ImageURL,
			Action:       input.Action,
			TargetID:     input.TargetID,
		}

		created, err := h.ItemService.AddItem(c.Context(), batchID, item)
		h.HandleResponse(c, created, err)
		return nil
	})
}

// ListItems trả về các item của một batch theo thứ tự insertion
func (h *StagingHandler) ListItems(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		batchID, err := h.parseBatchID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		items, err := h.ItemService.ListItems(c.Context(), batchID)
		h.HandleResponse(c, items, err)
		return nil
	})
}

// ListMine liệt kê các batch của người dùng đang đăng nhập, mới nhất trước
func (h *StagingHandler) ListMine(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		rs, ok := middleware.GetRoleState(c)
		if !ok {
			h.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		batches, err := h.BatchService.ListBatchesByAuthor(c.Context(), rs.UID)
		h.HandleResponse(c, batches, err)
		return nil
	})
}

// ListAll liệt kê toàn bộ batch cho người duyệt, lọc theo trạng thái nếu có
func (h *StagingHandler) ListAll(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		status := c.Query("status", "")
		switch status {
		case "", stagingmodels.BatchStatusPending, stagingmodels.BatchStatusApproved, stagingmodels.BatchStatusRejected:
		default:
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Trạng thái '%s' không hợp lệ, phải là pending|approved|rejected", status),
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		batches, err := h.BatchService.ListAllBatches(c.Context(), status)
		h.HandleResponse(c, batches, err)
		return nil
	})
}
