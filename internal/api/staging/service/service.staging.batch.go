package stagingsvc

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/base/service"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/api/events"
	stagingmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/models"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/global"
)

// StagingBatchService là service quản lý các lô thay đổi chờ duyệt
type StagingBatchService struct {
	*basesvc.BaseServiceMongoImpl[stagingmodels.StagingBatch]
}

// NewStagingBatchService tạo mới StagingBatchService
func NewStagingBatchService() (*StagingBatchService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.StagingBatches)
	if !exist {
		return nil, fmt.Errorf("failed to get staging_batches collection: %v", common.ErrNotFound)
	}

	return &StagingBatchService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[stagingmodels.StagingBatch](collection),
	}, nil
}

// CreateBatch tạo một batch mới ở trạng thái pending cho người gửi
func (s *StagingBatchService) CreateBatch(ctx context.Context, uid, email, source string) (stagingmodels.StagingBatch, error) {
	if uid == "" {
		return stagingmodels.StagingBatch{}, common.ErrRequiredField
	}

	batch := stagingmodels.StagingBatch{
		Status:         stagingmodels.BatchStatusPending,
		CreatedByUID:   uid,
		CreatedByEmail: email,
		Source:         source,
		Totals:         stagingmodels.BatchTotals{},
	}
	return s.InsertOne(ctx, batch)
}

// CanMutateBatch kiểm tra một người dùng có được thêm/sửa item của batch không.
// Batch chỉ sửa được khi còn pending (hoặc rejected để tác giả soạn lại),
// và chỉ bởi chính tác giả trừ khi người gọi là người duyệt.
func CanMutateBatch(batch stagingmodels.StagingBatch, uid string, reviewer bool) error {
	switch batch.Status {
	case stagingmodels.BatchStatusPending, stagingmodels.BatchStatusRejected:
	default:
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Batch ở trạng thái '%s' không còn sửa được", batch.Status),
			common.StatusBadRequest, nil)
	}
	if !reviewer && batch.CreatedByUID != uid {
		return common.NewError(common.ErrCodeAuthRole,
			"Chỉ tác giả của batch hoặc người duyệt mới được sửa batch này",
			common.StatusForbidden, nil)
	}
	return nil
}

// UpdateTotals ghi lại thống kê item thực tế của batch
func (s *StagingBatchService) UpdateTotals(ctx context.Context, batchID primitive.ObjectID, totals stagingmodels.BatchTotals) (stagingmodels.StagingBatch, error) {
	return s.UpdateById(ctx, batchID, &basesvc.UpdateData{
		Set: map[string]interface{}{"totals": totals},
	})
}

// SortBatches sắp xếp batch mới nhất trước; batch không có createdAt xếp cuối,
// giữ nguyên thứ tự tương đối giữa chúng (stable). Store không giả định index
// nên việc sắp xếp làm ở phía client.
func SortBatches(batches []stagingmodels.StagingBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i].CreatedAt, batches[j].CreatedAt
		if a == 0 || b == 0 {
			return a != 0 && b == 0
		}
		return a > b
	})
}

// ListBatchesByAuthor liệt kê các batch của một người gửi, mới nhất trước
func (s *StagingBatchService) ListBatchesByAuthor(ctx context.Context, uid string) ([]stagingmodels.StagingBatch, error) {
	batches, err := s.Find(ctx, bson.M{"createdByUid": uid}, nil)
	if err != nil {
		return nil, err
	}
	SortBatches(batches)
	return batches, nil
}

// ListAllBatches liệt kê toàn bộ batch cho người duyệt, lọc theo trạng thái nếu có
func (s *StagingBatchService) ListAllBatches(ctx context.Context, status string) ([]stagingmodels.StagingBatch, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	batches, err := s.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	SortBatches(batches)
	return batches, nil
}

// Subscribe đăng ký theo dõi thay đổi trên staging_batches.
// Handler được gọi với snapshot danh sách batch khớp filter sau mỗi lần dữ liệu thay đổi.
// Trả về hàm hủy đăng ký.
func (s *StagingBatchService) Subscribe(filter bson.M, handler func([]stagingmodels.StagingBatch)) func() {
	collectionName := s.Collection().Name()
	return subscribeBatchChanges(collectionName, func() ([]stagingmodels.StagingBatch, error) {
		return s.Find(context.Background(), filter, nil)
	}, handler)
}

// subscribeBatchChanges nối event bus với một nguồn snapshot: mỗi sự kiện
// chạm collection sẽ load lại danh sách, sắp xếp rồi giao cho handler.
func subscribeBatchChanges(collectionName string, load func() ([]stagingmodels.StagingBatch, error), handler func([]stagingmodels.StagingBatch)) func() {
	return events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if e.CollectionName != collectionName {
			return
		}
		batches, err := load()
		if err != nil {
			return
		}
		SortBatches(batches)
		handler(batches)
	})
}
