// Package stagingsvc - Test sắp xếp batch và validate staging item.
package stagingsvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarolZhiLi/GB-quiz-portal/internal/api/events"
	stagingmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/models"
)

func TestSortBatches_NewestFirstUndatedLast(t *testing.T) {
	batches := []stagingmodels.StagingBatch{
		{Source: "undated-1"},
		{Source: "old", CreatedAt: 100},
		{Source: "new", CreatedAt: 300},
		{Source: "undated-2"},
		{Source: "mid", CreatedAt: 200},
	}

	SortBatches(batches)

	require.Len(t, batches, 5)
	assert.Equal(t, "new", batches[0].Source)
	assert.Equal(t, "mid", batches[1].Source)
	assert.Equal(t, "old", batches[2].Source)
	// Batch không có createdAt xếp cuối, giữ nguyên thứ tự tương đối
	assert.Equal(t, "undated-1", batches[3].Source)
	assert.Equal(t, "undated-2", batches[4].Source)
}

func TestSortBatches_StableForEqualTimestamps(t *testing.T) {
	batches := []stagingmodels.StagingBatch{
		{Source: "a", CreatedAt: 100},
		{Source: "b", CreatedAt: 100},
		{Source: "c", CreatedAt: 100},
	}

	SortBatches(batches)

	assert.Equal(t, "a", batches[0].Source)
	assert.Equal(t, "b", batches[1].Source)
	assert.Equal(t, "c", batches[2].Source)
}

func validPayloadItem() stagingmodels.StagingBatchItem {
	return stagingmodels.StagingBatchItem{
		QuestionText: "Câu hỏi?",
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: 1,
		Level:        2,
		UserType:     []string{"practitioner"},
	}
}

func TestValidateItem_DeleteNeedsOnlyTarget(t *testing.T) {
	item := stagingmodels.StagingBatchItem{Action: stagingmodels.ItemActionDelete, TargetID: "665f1f77bcf86cd799439011"}
	assert.NoError(t, ValidateItem(item), "item xóa chỉ cần __targetId, không cần payload")

	missing := stagingmodels.StagingBatchItem{Action: stagingmodels.ItemActionDelete}
	assert.Error(t, ValidateItem(missing), "item xóa thiếu __targetId phải bị từ chối")
}

func TestValidateItem_UpdateNeedsTargetAndPayload(t *testing.T) {
	item := validPayloadItem()
	item.Action = stagingmodels.ItemActionUpdate

	assert.Error(t, ValidateItem(item), "item cập nhật thiếu __targetId phải bị từ chối")

	item.TargetID = "665f1f77bcf86cd799439011"
	assert.NoError(t, ValidateItem(item))
}

func TestValidateItem_CreatePayloadRules(t *testing.T) {
	ok := validPayloadItem()
	assert.NoError(t, ValidateItem(ok))

	noText := validPayloadItem()
	noText.QuestionText = "   "
	assert.Error(t, ValidateItem(noText))

	badIndex := validPayloadItem()
	badIndex.CorrectIndex = 4
	assert.Error(t, ValidateItem(badIndex))

	badLevel := validPayloadItem()
	badLevel.Level = 5
	assert.Error(t, ValidateItem(badLevel))

	badUserType := validPayloadItem()
	badUserType.UserType = []string{"teacher"}
	assert.Error(t, ValidateItem(badUserType))

	oneOption := validPayloadItem()
	oneOption.Options = []string{"a"}
	assert.Error(t, ValidateItem(oneOption))
}

func TestCanMutateBatch_OwnershipAndState(t *testing.T) {
	pending := stagingmodels.StagingBatch{Status: stagingmodels.BatchStatusPending, CreatedByUID: "author"}
	rejected := stagingmodels.StagingBatch{Status: stagingmodels.BatchStatusRejected, CreatedByUID: "author"}
	approved := stagingmodels.StagingBatch{Status: stagingmodels.BatchStatusApproved, CreatedByUID: "author"}

	// Tác giả sửa được batch pending và rejected của chính mình
	assert.NoError(t, CanMutateBatch(pending, "author", false))
	assert.NoError(t, CanMutateBatch(rejected, "author", false))

	// Người khác (không phải người duyệt) không được đụng vào batch của tác giả
	err := CanMutateBatch(pending, "intruder", false)
	require.Error(t, err, "portal user khác không được thêm item vào batch của người khác")

	// Người duyệt được sửa batch pending/rejected của bất kỳ ai
	assert.NoError(t, CanMutateBatch(pending, "reviewer", true))
	assert.NoError(t, CanMutateBatch(rejected, "reviewer", true))

	// Batch đã approved không còn sửa được, kể cả tác giả hay người duyệt
	assert.Error(t, CanMutateBatch(approved, "author", false))
	assert.Error(t, CanMutateBatch(approved, "reviewer", true))
}

func TestSubscribeBatchChanges_DeliversSortedSnapshot(t *testing.T) {
	snapshot := []stagingmodels.StagingBatch{
		{Source: "old", CreatedAt: 100},
		{Source: "new", CreatedAt: 300},
	}
	load := func() ([]stagingmodels.StagingBatch, error) {
		out := make([]stagingmodels.StagingBatch, len(snapshot))
		copy(out, snapshot)
		return out, nil
	}

	received := make(chan []stagingmodels.StagingBatch, 1)
	unsubscribe := subscribeBatchChanges("staging_batches", load, func(batches []stagingmodels.StagingBatch) {
		received <- batches
	})
	defer unsubscribe()

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "staging_batches",
		Operation:      events.OpUpdate,
	})

	select {
	case batches := <-received:
		require.Len(t, batches, 2)
		// Snapshot được sắp xếp mới nhất trước trước khi giao cho handler
		assert.Equal(t, "new", batches[0].Source)
		assert.Equal(t, "old", batches[1].Source)
	case <-time.After(2 * time.Second):
		t.Fatal("handler không nhận được snapshot sau khi dữ liệu thay đổi")
	}
}

func TestSubscribeBatchChanges_IgnoresOtherCollections(t *testing.T) {
	received := make(chan []stagingmodels.StagingBatch, 1)
	unsubscribe := subscribeBatchChanges("staging_batches", func() ([]stagingmodels.StagingBatch, error) {
		return []stagingmodels.StagingBatch{{Source: "x"}}, nil
	}, func(batches []stagingmodels.StagingBatch) {
		received <- batches
	})
	defer unsubscribe()

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "quiz_questions",
		Operation:      events.OpInsert,
	})

	select {
	case <-received:
		t.Fatal("sự kiện của collection khác không được kích hoạt snapshot")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSubscribeBatchChanges_UnsubscribeStopsDelivery(t *testing.T) {
	received := make(chan []stagingmodels.StagingBatch, 1)
	unsubscribe := subscribeBatchChanges("staging_batches", func() ([]stagingmodels.StagingBatch, error) {
		return nil, nil
	}, func(batches []stagingmodels.StagingBatch) {
		received <- batches
	})
	unsubscribe()

	events.EmitDataChanged(context.Background(), events.DataChangeEvent{
		CollectionName: "staging_batches",
		Operation:      events.OpDelete,
	})

	select {
	case <-received:
		t.Fatal("handler đã hủy đăng ký không được gọi nữa")
	case <-time.After(200 * time.Millisecond):
	}
}
