package submissionsvc

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/models"
	basesvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/base/service"
	questionmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/question/models"
	questionsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/question/service"
	stagingmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/models"
	stagingsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/service"
	submissiondto "github.com/CarolZhiLi/GB-quiz-portal/internal/api/submission/dto"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/assets"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/logger"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/utility"
)

// imageCategory là category mặc định cho ảnh câu hỏi trên asset store
const imageCategory = "questions"

// SubmissionService nhận một loạt draft và ghi chúng trực tiếp (người duyệt)
// hoặc đưa vào staging batch (vai trò còn lại)
type SubmissionService struct {
	QuestionService *questionsvc.QuestionService
	BatchService    *stagingsvc.StagingBatchService
	ItemService     *stagingsvc.StagingItemService
	Assets          *assets.Store
}

// NewSubmissionService tạo mới SubmissionService. Asset store là best effort:
// khi storage chưa cấu hình, các draft mang ảnh thô sẽ bị từ chối.
func NewSubmissionService(ctx context.Context) (*SubmissionService, error) {
	questionService, err := questionsvc.NewQuestionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create question service: %v", err)
	}
	batchService, err := stagingsvc.NewStagingBatchService()
	if err != nil {
		return nil, fmt.Errorf("failed to create staging batch service: %v", err)
	}
	itemService, err := stagingsvc.NewStagingItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create staging item service: %v", err)
	}

	store, err := assets.NewStore(ctx)
	if err != nil {
		logger.GetLogger("submission").WithError(err).
			Warn("⚠️ [SUBMISSION] Asset store chưa khả dụng, ảnh thô sẽ bị từ chối")
		store = nil
	}

	return &SubmissionService{
		QuestionService: questionService,
		BatchService:    batchService,
		ItemService:     itemService,
		Assets:          store,
	}, nil
}

// Submit xử lý một loạt draft theo vai trò của người gửi.
// Người duyệt ghi thẳng vào collection câu hỏi; vai trò còn lại
// được gom vào một staging batch pending chờ duyệt.
func (s *SubmissionService) Submit(ctx context.Context, rs authmodels.RoleState, input submissiondto.SubmitInput) (*submissiondto.SubmitResult, error) {
	if len(input.Drafts) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput,
			"Cần ít nhất một draft để submit", common.StatusBadRequest, nil)
	}

	if rs.CanReview() {
		return s.submitDirect(ctx, input)
	}
	return s.submitStaged(ctx, rs, input)
}

// submitDirect áp dụng từng draft trực tiếp lên collection câu hỏi
func (s *SubmissionService) submitDirect(ctx context.Context, input submissiondto.SubmitInput) (*submissiondto.SubmitResult, error) {
	result := &submissiondto.SubmitResult{
		Mode:    submissiondto.SubmitModeDirect,
		Total:   len(input.Drafts),
		Results: make([]submissiondto.DraftResult, 0, len(input.Drafts)),
	}

	for i, draft := range input.Drafts {
		dr := submissiondto.DraftResult{Index: i, Status: submissiondto.DraftStatusSuccess}

		questionID, err := s.applyDirect(ctx, draft)
		if err != nil {
			dr.Status = submissiondto.DraftStatusError
			dr.Error = err.Error()
			result.Error++
		} else {
			dr.QuestionID = questionID
			result.Success++
		}
		result.Results = append(result.Results, dr)
	}

	return result, nil
}

// applyDirect xử lý một draft theo hành động của nó, trả về id câu hỏi liên quan
func (s *SubmissionService) applyDirect(ctx context.Context, draft submissiondto.QuestionDraft) (string, error) {
	switch strings.TrimSpace(draft.Action) {
	case stagingmodels.ItemActionDelete:
		return s.directDelete(ctx, draft)
	case stagingmodels.ItemActionUpdate:
		return s.directUpdate(ctx, draft)
	case "", stagingmodels.ItemActionCreate:
		return s.directCreate(ctx, draft)
	default:
		return "", common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Hành động '%s' không hợp lệ, phải là create|update|delete", draft.Action),
			common.StatusBadRequest, nil)
	}
}

// directCreate tạo câu hỏi mới, id được cấp trước để đặt tên asset ảnh
func (s *SubmissionService) directCreate(ctx context.Context, draft submissiondto.QuestionDraft) (string, error) {
	if err := questionsvc.ValidatePayload(draft.QuestionText, draft.Options, draft.CorrectIndex, draft.Level, draft.UserType); err != nil {
		return "", err
	}

	id := primitive.NewObjectID()
	imageURL := draft.ImageURLValue()
	if draft.ImageData != "" {
		uploaded, err := s.uploadImage(ctx, id.Hex(), draft)
		if err != nil {
			return "", err
		}
		imageURL = uploaded
	}

	now := time.Now().UnixMilli()
	question := questionmodels.Question{
		ID:           id,
		QuestionText: strings.TrimSpace(draft.QuestionText),
		Options:      draft.Options,
		CorrectIndex: draft.CorrectIndex,
		Level:        draft.Level,
		UserType:     draft.UserType,
		Explanation:  draft.Explanation,
		ImageURL:     imageURL,
		Published:    true,
		PublishedAt:  now,
	}

	created, err := s.QuestionService.InsertOne(ctx, question)
	if err != nil {
		return "", err
	}
	return utility.ObjectID2String(created.ID), nil
}

// directUpdate cập nhật câu hỏi hiện có; thay ảnh sẽ upload asset mới
// và best-effort xóa asset cũ. Gửi imageUrl rỗng tường minh sẽ gỡ trường
// imageUrl khỏi câu hỏi và xóa asset đã lưu.
func (s *SubmissionService) directUpdate(ctx context.Context, draft submissiondto.QuestionDraft) (string, error) {
	if !primitive.IsValidObjectID(draft.TargetID) {
		return "", common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("targetId '%s' không hợp lệ cho draft cập nhật", draft.TargetID),
			common.StatusBadRequest, nil)
	}
	if err := questionsvc.ValidatePayload(draft.QuestionText, draft.Options, draft.CorrectIndex, draft.Level, draft.UserType); err != nil {
		return "", err
	}

	targetID := utility.String2ObjectID(draft.TargetID)
	existing, err := s.QuestionService.FindOneById(ctx, targetID)
	if err != nil {
		return "", err
	}

	imageURL := draft.ImageURLValue()
	clearImage := draft.ClearsImage() && draft.ImageData == ""
	if draft.ImageData != "" {
		uploaded, err := s.uploadImage(ctx, targetID.Hex(), draft)
		if err != nil {
			return "", err
		}
		imageURL = uploaded
		if existing.ImageURL != "" && existing.ImageURL != uploaded && s.Assets != nil {
			if err := s.Assets.DeleteByURL(ctx, existing.ImageURL); err != nil {
				logger.GetLogger("submission").WithField("questionId", draft.TargetID).WithError(err).
					Warn("⚠️ [SUBMISSION] Không xóa được asset ảnh cũ")
			}
		}
	}

	set := map[string]interface{}{
		"questionText": strings.TrimSpace(draft.QuestionText),
		"options":      draft.Options,
		"correctIndex": draft.CorrectIndex,
		"level":        draft.Level,
		"usertype":     draft.UserType,
		"explanation":  draft.Explanation,
	}
	update := &basesvc.UpdateData{Set: set}

	if clearImage {
		// Xóa ảnh: gỡ trường imageUrl và best-effort xóa asset đã lưu
		update.Unset = map[string]interface{}{"imageUrl": ""}
		if existing.ImageURL != "" && s.Assets != nil {
			if err := s.Assets.DeleteByURL(ctx, existing.ImageURL); err != nil {
				logger.GetLogger("submission").WithField("questionId", draft.TargetID).WithError(err).
					Warn("⚠️ [SUBMISSION] Không xóa được asset ảnh khi gỡ ảnh khỏi câu hỏi")
			}
		}
	} else if imageURL != "" {
		set["imageUrl"] = imageURL
	}

	if _, err := s.QuestionService.UpdateById(ctx, targetID, update); err != nil {
		return "", err
	}
	return draft.TargetID, nil
}

// directDelete xóa câu hỏi và best-effort xóa asset ảnh của nó.
// Câu hỏi đã bị xóa trước đó không phải lỗi (idempotent).
func (s *SubmissionService) directDelete(ctx context.Context, draft submissiondto.QuestionDraft) (string, error) {
	if !primitive.IsValidObjectID(draft.TargetID) {
		return "", common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("targetId '%s' không hợp lệ cho draft xóa", draft.TargetID),
			common.StatusBadRequest, nil)
	}

	targetID := utility.String2ObjectID(draft.TargetID)
	existing, err := s.QuestionService.FindOneById(ctx, targetID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return draft.TargetID, nil
		}
		return "", err
	}

	if err := s.QuestionService.DeleteById(ctx, targetID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return draft.TargetID, nil
		}
		return "", err
	}

	if existing.ImageURL != "" && s.Assets != nil {
		if err := s.Assets.DeleteByURL(ctx, existing.ImageURL); err != nil {
			logger.GetLogger("submission").WithField("questionId", draft.TargetID).WithError(err).
				Warn("⚠️ [SUBMISSION] Không xóa được asset ảnh của câu hỏi đã xóa")
		}
	}
	return draft.TargetID, nil
}

// uploadImage giải mã ảnh base64 của draft và upload lên asset store
func (s *SubmissionService) uploadImage(ctx context.Context, questionID string, draft submissiondto.QuestionDraft) (string, error) {
	if s.Assets == nil {
		return "", common.NewError(common.ErrCodeExternalService,
			"Asset store chưa được cấu hình, không nhận được ảnh thô",
			common.StatusServiceUnavailable, nil)
	}

	data, err := base64.StdEncoding.DecodeString(draft.ImageData)
	if err != nil {
		return "", common.NewError(common.ErrCodeValidationFormat,
			"Dữ liệu ảnh không phải base64 hợp lệ", common.StatusBadRequest, nil)
	}
	ext, err := assets.ExtForContentType(draft.ImageType)
	if err != nil {
		return "", err
	}

	objectPath := assets.ObjectPath(imageCategory, questionID, ext)
	return s.Assets.Upload(ctx, objectPath, data, draft.ImageType)
}

// submitStaged gom các draft vào một staging batch pending.
// Luồng staging chỉ nhận ảnh dạng URL: draft mang ảnh thô bị từ chối.
func (s *SubmissionService) submitStaged(ctx context.Context, rs authmodels.RoleState, input submissiondto.SubmitInput) (*submissiondto.SubmitResult, error) {
	batch, err := s.BatchService.CreateBatch(ctx, rs.UID, rs.Email, input.Source)
	if err != nil {
		return nil, err
	}

	result := &submissiondto.SubmitResult{
		Mode:    submissiondto.SubmitModeStaged,
		BatchID: utility.ObjectID2String(batch.ID),
		Total:   len(input.Drafts),
		Results: make([]submissiondto.DraftResult, 0, len(input.Drafts)),
	}

	for i, draft := range input.Drafts {
		dr := submissiondto.DraftResult{Index: i, Status: submissiondto.DraftStatusSuccess}

		itemID, err := s.stageDraft(ctx, batch.ID, draft)
		if err != nil {
			dr.Status = submissiondto.DraftStatusError
			dr.Error = err.Error()
			result.Error++
		} else {
			dr.ItemID = itemID
			result.Success++
		}
		result.Results = append(result.Results, dr)
	}

	// Totals được tính lại từ kết quả ghi thực tế, không tin số liệu client gửi lên
	totals := stagingmodels.BatchTotals{
		Success: result.Success,
		Error:   result.Error,
		Total:   result.Total,
	}
	if _, err := s.BatchService.UpdateTotals(ctx, batch.ID, totals); err != nil {
		return nil, err
	}

	return result, nil
}

// stageDraft chuyển một draft thành staging item và ghi vào batch
func (s *SubmissionService) stageDraft(ctx context.Context, batchID primitive.ObjectID, draft submissiondto.QuestionDraft) (string, error) {
	if draft.ImageData != "" {
		return "", common.NewError(common.ErrCodeValidationInput,
			"Luồng staging chỉ nhận ảnh dạng URL, không nhận ảnh thô",
			common.StatusBadRequest, nil)
	}

	item := stagingmodels.StagingBatchItem{
		QuestionText: draft.QuestionText,
		Options:      draft.Options,
		CorrectIndex: draft.CorrectIndex,
		Level:        draft.Level,
		UserType:     draft.UserType,
		Explanation:  draft.Explanation,
		ImageURL:     draft.ImageURLValue(),
		Action:       strings.TrimSpace(draft.Action),
		TargetID:     draft.TargetID,
	}

	created, err := s.ItemService.AddItem(ctx, batchID, item)
	if err != nil {
		return "", err
	}
	return utility.ObjectID2String(created.ID), nil
}
