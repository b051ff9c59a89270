package reviewsvc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basesvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/base/service"
	authmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/models"
	questionsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/question/service"
	stagingmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/models"
	stagingsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/service"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/global"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/logger"
)

// PublishGroupSize là số write tối đa trong một nhóm xuất bản.
// Mỗi nhóm được áp dụng trong một transaction riêng.
const PublishGroupSize = 450

// DefaultRetention là thời gian giữ batch đã duyệt/từ chối trước khi dọn dẹp.
const DefaultRetention = 14 * 24 * time.Hour

// ReviewService là engine duyệt và xuất bản các staging batch
type ReviewService struct {
	BatchService    *stagingsvc.StagingBatchService
	ItemService     *stagingsvc.StagingItemService
	QuestionService *questionsvc.QuestionService
	client          *mongo.Client
	retention       time.Duration
}

// NewReviewService tạo mới ReviewService với retention từ cấu hình hệ thống
func NewReviewService() (*ReviewService, error) {
	batchService, err := stagingsvc.NewStagingBatchService()
	if err != nil {
		return nil, fmt.Errorf("failed to create staging batch service: %v", err)
	}
	itemService, err := stagingsvc.NewStagingItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create staging item service: %v", err)
	}
	questionService, err := questionsvc.NewQuestionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create question service: %v", err)
	}

	retention := DefaultRetention
	if global.ServerConfig != nil && global.ServerConfig.RetentionDays > 0 {
		retention = time.Duration(global.ServerConfig.RetentionDays) * 24 * time.Hour
	}

	return &ReviewService{
		BatchService:    batchService,
		ItemService:     itemService,
		QuestionService: questionService,
		client:          global.MongoDB_Session,
		retention:       retention,
	}, nil
}

// ChunkItems chia các item thành các nhóm tối đa size phần tử, giữ nguyên thứ tự
func ChunkItems(items []stagingmodels.StagingBatchItem, size int) [][]stagingmodels.StagingBatchItem {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	chunks := make([][]stagingmodels.StagingBatchItem, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

// BuildLivePayload dựng payload câu hỏi live từ một staging item.
// questionText được trim; createdAt giữ từ item (now nếu thiếu); các mốc xuất bản
// được đóng dấu; imageUrl chỉ đưa vào khi không rỗng sau khi trim.
func BuildLivePayload(item stagingmodels.StagingBatchItem, batchID string, now int64) map[string]interface{} {
	payload := map[string]interface{}{
		"questionText":     strings.TrimSpace(item.QuestionText),
		"options":          item.Options,
		"correctIndex":     item.CorrectIndex,
		"level":            item.Level,
		"usertype":         item.UserType,
		"explanation":      item.Explanation,
		"published":        true,
		"publishedAt":      now,
		"publishedBatchId": batchID,
		"updatedAt":        now,
	}

	if item.CreatedAt > 0 {
		payload["createdAt"] = item.CreatedAt
	} else {
		payload["createdAt"] = now
	}

	if imageURL := strings.TrimSpace(item.ImageURL); imageURL != "" {
		payload["imageUrl"] = imageURL
	}

	return payload
}

// CheckUpdateTarget kiểm tra một write cập nhật có khớp target không.
// MatchedCount 0 nghĩa là câu hỏi đích đã bị xóa giữa chừng: nhóm phải thất bại
// để transaction rollback thay vì đánh dấu batch approved với bản sửa bị mất.
func CheckUpdateTarget(matchedCount int64, targetID string) error {
	if matchedCount > 0 {
		return nil
	}
	return common.NewError(common.ErrCodeDatabaseQuery,
		fmt.Sprintf("Câu hỏi đích '%s' của item cập nhật không còn tồn tại", targetID),
		common.StatusNotFound, nil)
}

// applyGroup áp dụng một nhóm item lên collection câu hỏi trong cùng một session context
func (s *ReviewService) applyGroup(sessCtx context.Context, items []stagingmodels.StagingBatchItem, batchID string, now int64) error {
	col := s.QuestionService.Collection()

	for _, item := range items {
		switch item.EffectiveAction() {
		case stagingmodels.ItemActionDelete:
			if !primitive.IsValidObjectID(item.TargetID) {
				// Target không hợp lệ được bỏ qua như target không tồn tại
				continue
			}
			targetID, _ := primitive.ObjectIDFromHex(item.TargetID)
			// Xóa idempotent: target không tồn tại không phải lỗi
			if _, err := col.DeleteOne(sessCtx, bson.M{"_id": targetID}); err != nil {
				return err
			}

		case stagingmodels.ItemActionUpdate:
			if !primitive.IsValidObjectID(item.TargetID) {
				return common.NewError(common.ErrCodeValidationInput,
					fmt.Sprintf("__targetId '%s' không hợp lệ cho item cập nhật", item.TargetID),
					common.StatusBadRequest, nil)
			}
			targetID, _ := primitive.ObjectIDFromHex(item.TargetID)
			payload := BuildLivePayload(item, batchID, now)
			res, err := col.UpdateOne(sessCtx, bson.M{"_id": targetID}, bson.M{"$set": payload})
			if err != nil {
				return err
			}
			// Target đã biến mất là lỗi, không được lặng lẽ bỏ qua bản sửa
			if err := CheckUpdateTarget(res.MatchedCount, item.TargetID); err != nil {
				return err
			}

		default: // create
			payload := BuildLivePayload(item, batchID, now)
			if _, err := col.InsertOne(sessCtx, payload); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApproveBatch duyệt một batch pending và xuất bản các item của nó.
// Item được xử lý theo nhóm tối đa 450 write; mỗi nhóm là một transaction.
// Nếu nhóm k thất bại, các nhóm trước đó vẫn đã xuất bản (partial publish),
// batch giữ nguyên pending và lỗi TransactionError mang chi tiết nhóm lỗi.
func (s *ReviewService) ApproveBatch(ctx context.Context, batchID primitive.ObjectID, reviewer authmodels.RoleState) (stagingmodels.StagingBatch, error) {
	var zero stagingmodels.StagingBatch
	log := logger.GetLogger("review")

	batch, err := s.BatchService.FindOneById(ctx, batchID)
	if err != nil {
		return zero, err
	}
	if batch.Status != stagingmodels.BatchStatusPending {
		return zero, common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Chỉ batch pending mới duyệt được, batch đang ở trạng thái '%s'", batch.Status),
			common.StatusBadRequest, nil)
	}

	items, err := s.ItemService.ListItems(ctx, batchID)
	if err != nil {
		return zero, err
	}

	now := time.Now().UnixMilli()
	batchHex := batchID.Hex()
	chunks := ChunkItems(items, PublishGroupSize)

	for k, chunk := range chunks {
		group := chunk
		session, err := s.client.StartSession()
		if err != nil {
			return zero, s.transactionError(err, k, len(chunks))
		}

		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			return nil, s.applyGroup(sessCtx, group, batchHex, now)
		})
		session.EndSession(ctx)

		if err != nil {
			log.WithFields(map[string]interface{}{
				"batchId":         batchHex,
				"publishedGroups": k,
				"failedGroup":     k + 1,
			}).Error("❌ [REVIEW] Nhóm xuất bản thất bại, batch giữ nguyên pending")
			return zero, s.transactionError(err, k, len(chunks))
		}
	}

	updated, err := s.BatchService.UpdateById(ctx, batchID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status":          stagingmodels.BatchStatusApproved,
			"approvedAt":      now,
			"approvedByUid":   reviewer.UID,
			"approvedByEmail": reviewer.Email,
		},
	})
	if err != nil {
		return zero, err
	}

	log.WithFields(map[string]interface{}{
		"batchId": batchHex,
		"items":   len(items),
		"groups":  len(chunks),
	}).Info("✅ [REVIEW] Đã duyệt và xuất bản batch")

	return updated, nil
}

// transactionError gói lỗi nhóm xuất bản với chi tiết partial publish
func (s *ReviewService) transactionError(err error, failedIndex, totalGroups int) error {
	return common.NewError(common.ErrCodeDatabaseTransaction,
		fmt.Sprintf("Xuất bản thất bại ở nhóm %d/%d, các nhóm trước đó vẫn đã xuất bản", failedIndex+1, totalGroups),
		common.StatusInternalServerError,
		map[string]interface{}{
			"publishedGroups": failedIndex,
			"failedGroup":     failedIndex + 1,
			"groupSize":       PublishGroupSize,
		},
	)
}

// RejectBatch từ chối một batch pending, không ghi gì vào collection câu hỏi
func (s *ReviewService) RejectBatch(ctx context.Context, batchID primitive.ObjectID, reviewer authmodels.RoleState, note string) (stagingmodels.StagingBatch, error) {
	var zero stagingmodels.StagingBatch

	batch, err := s.BatchService.FindOneById(ctx, batchID)
	if err != nil {
		return zero, err
	}
	if batch.Status != stagingmodels.BatchStatusPending {
		return zero, common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Chỉ batch pending mới từ chối được, batch đang ở trạng thái '%s'", batch.Status),
			common.StatusBadRequest, nil)
	}

	set := map[string]interface{}{
		"status":          stagingmodels.BatchStatusRejected,
		"rejectedAt":      time.Now().UnixMilli(),
		"rejectedByUid":   reviewer.UID,
		"rejectedByEmail": reviewer.Email,
	}
	if note != "" {
		set["reviewNote"] = note
	}

	return s.BatchService.UpdateById(ctx, batchID, &basesvc.UpdateData{Set: set})
}

// CanActOnBatch kiểm tra một người dùng có được gửi lại/dọn dẹp batch không:
// người duyệt với mọi batch, tác giả với batch của chính mình.
func CanActOnBatch(batch stagingmodels.StagingBatch, actor authmodels.RoleState) bool {
	if actor.CanReview() {
		return true
	}
	return actor.UID != "" && batch.CreatedByUID == actor.UID
}

// CheckResubmitState kiểm tra trạng thái nguồn khi gửi lại:
// chỉ batch rejected mới được đưa trở lại pending.
func CheckResubmitState(batch stagingmodels.StagingBatch) error {
	if batch.Status != stagingmodels.BatchStatusRejected {
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Chỉ batch rejected mới gửi lại được, batch đang ở trạng thái '%s'", batch.Status),
			common.StatusBadRequest, nil)
	}
	return nil
}

// ResubmitUpdate dựng update đưa batch trở lại pending: xóa các dấu từ chối,
// ghi chú mới (nếu có) thay thế ghi chú cũ.
func ResubmitUpdate(note string) *basesvc.UpdateData {
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"status": stagingmodels.BatchStatusPending,
		},
		Unset: map[string]interface{}{
			"rejectedAt":      "",
			"rejectedByUid":   "",
			"rejectedByEmail": "",
		},
	}
	if note != "" {
		update.Set["reviewNote"] = note
	} else {
		update.Unset["reviewNote"] = ""
	}
	return update
}

// ResubmitBatch đưa một batch rejected trở lại pending và xóa các dấu từ chối.
// Chỉ tác giả của batch hoặc người duyệt mới gửi lại được;
// mọi trạng thái nguồn khác rejected đều là lỗi. Note mới (nếu có) thay ghi chú cũ.
func (s *ReviewService) ResubmitBatch(ctx context.Context, batchID primitive.ObjectID, actor authmodels.RoleState, note string) (stagingmodels.StagingBatch, error) {
	var zero stagingmodels.StagingBatch

	batch, err := s.BatchService.FindOneById(ctx, batchID)
	if err != nil {
		return zero, err
	}
	if !CanActOnBatch(batch, actor) {
		return zero, common.NewError(common.ErrCodeAuthRole,
			"Chỉ tác giả của batch hoặc người duyệt mới được gửi lại batch này",
			common.StatusForbidden, nil)
	}
	if err := CheckResubmitState(batch); err != nil {
		return zero, err
	}

	return s.BatchService.UpdateById(ctx, batchID, ResubmitUpdate(note))
}

// CanCleanup kiểm tra một batch có đủ điều kiện dọn dẹp tại thời điểm now không.
// Điều kiện: trạng thái approved hoặc rejected và đã giữ đủ thời gian retention
// (so sánh chính xác đến mili giây).
func CanCleanup(batch stagingmodels.StagingBatch, now time.Time, retention time.Duration) bool {
	if batch.Status != stagingmodels.BatchStatusApproved && batch.Status != stagingmodels.BatchStatusRejected {
		return false
	}
	statusAt := batch.StatusAt()
	if statusAt <= 0 {
		return false
	}
	return now.UnixMilli()-statusAt >= retention.Milliseconds()
}

// CanCleanupBatch kiểm tra điều kiện dọn dẹp với retention đã cấu hình của service
func (s *ReviewService) CanCleanupBatch(batch stagingmodels.StagingBatch, now time.Time) bool {
	return CanCleanup(batch, now, s.retention)
}

// CleanupBatch xóa một batch đã hết hạn retention cùng toàn bộ item của nó.
// Chỉ tác giả của batch hoặc người duyệt mới dọn dẹp được.
// Batch được fetch lại và kiểm tra điều kiện ngay trước khi xóa.
// Batch đã bị xóa trước đó là no-op.
func (s *ReviewService) CleanupBatch(ctx context.Context, batchID primitive.ObjectID, actor authmodels.RoleState) error {
	log := logger.GetLogger("review")

	batch, err := s.BatchService.FindOneById(ctx, batchID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Batch đã bị xóa: no-op
			return nil
		}
		return err
	}

	if !CanActOnBatch(batch, actor) {
		return common.NewError(common.ErrCodeAuthRole,
			"Chỉ tác giả của batch hoặc người duyệt mới được dọn dẹp batch này",
			common.StatusForbidden, nil)
	}

	if !s.CanCleanupBatch(batch, time.Now()) {
		return common.NewError(common.ErrCodeBusinessOperation,
			fmt.Sprintf("Batch '%s' chưa đủ điều kiện dọn dẹp", batchID.Hex()),
			common.StatusBadRequest, nil)
	}

	// Fan-out xóa item, best effort
	deleted, err := s.ItemService.DeleteItemsByBatch(ctx, batchID)
	if err != nil {
		log.WithField("batchId", batchID.Hex()).WithError(err).Warn("⚠️ [REVIEW] Lỗi xóa item khi dọn dẹp batch, vẫn tiếp tục")
	}

	if err := s.BatchService.DeleteById(ctx, batchID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}

	log.WithFields(map[string]interface{}{
		"batchId":      batchID.Hex(),
		"itemsDeleted": deleted,
	}).Info("🧹 [REVIEW] Đã dọn dẹp batch hết hạn retention")

	return nil
}

// ListCleanupCandidates trả về các batch đủ điều kiện dọn dẹp tại thời điểm now
func (s *ReviewService) ListCleanupCandidates(ctx context.Context, now time.Time) ([]stagingmodels.StagingBatch, error) {
	batches, err := s.BatchService.Find(ctx, bson.M{
		"status": bson.M{"$in": []string{stagingmodels.BatchStatusApproved, stagingmodels.BatchStatusRejected}},
	}, nil)
	if err != nil {
		return nil, err
	}

	candidates := make([]stagingmodels.StagingBatch, 0, len(batches))
	for _, batch := range batches {
		if s.CanCleanupBatch(batch, now) {
			candidates = append(candidates, batch)
		}
	}
	return candidates, nil
}
