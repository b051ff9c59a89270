package stagingsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/base/service"
	questionsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/question/service"
	stagingmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/models"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/global"
)

// StagingItemService là service quản lý các item trong staging batch
type StagingItemService struct {
	*basesvc.BaseServiceMongoImpl[stagingmodels.StagingBatchItem]
}

// NewStagingItemService tạo mới StagingItemService
func NewStagingItemService() (*StagingItemService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.StagingBatchItems)
	if !exist {
		return nil, fmt.Errorf("failed to get staging_batch_items collection: %v", common.ErrNotFound)
	}

	return &StagingItemService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[stagingmodels.StagingBatchItem](collection),
	}, nil
}

// ValidateItem kiểm tra payload của một staging item theo hành động của nó.
// Delete chỉ cần __targetId; create/update cần payload câu hỏi đầy đủ (update cũng cần __targetId).
func ValidateItem(item stagingmodels.StagingBatchItem) error {
	switch item.EffectiveAction() {
	case stagingmodels.ItemActionDelete:
		if item.TargetID == "" {
			return common.NewError(common.ErrCodeValidationInput, "Item xóa phải có __targetId", common.StatusBadRequest, nil)
		}
		return nil
	case stagingmodels.ItemActionUpdate:
		if item.TargetID == "" {
			return common.NewError(common.ErrCodeValidationInput, "Item cập nhật phải có __targetId", common.StatusBadRequest, nil)
		}
	}
	return questionsvc.ValidatePayload(item.QuestionText, item.Options, item.CorrectIndex, item.Level, item.UserType)
}

// AddItem thêm một item vào batch với published:false và publishedBatchId:null
func (s *StagingItemService) AddItem(ctx context.Context, batchID primitive.ObjectID, item stagingmodels.StagingBatchItem) (stagingmodels.StagingBatchItem, error) {
	if err := ValidateItem(item); err != nil {
		return stagingmodels.StagingBatchItem{}, err
	}

	item.BatchID = batchID
	item.Published = false
	item.PublishedBatchID = nil
	return s.InsertOne(ctx, item)
}

// ListItems trả về các item của một batch theo thứ tự insertion
func (s *StagingItemService) ListItems(ctx context.Context, batchID primitive.ObjectID) ([]stagingmodels.StagingBatchItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return s.Find(ctx, bson.M{"batchId": batchID}, opts)
}

// DeleteItemsByBatch xóa toàn bộ item của một batch (fan-out khi cleanup)
func (s *StagingItemService) DeleteItemsByBatch(ctx context.Context, batchID primitive.ObjectID) (int64, error) {
	return s.DeleteMany(ctx, bson.M{"batchId": batchID})
}
