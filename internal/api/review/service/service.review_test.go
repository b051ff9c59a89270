// Package reviewsvc - Test chia nhóm xuất bản, ngưỡng retention và payload live.
package reviewsvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/auth/models"
	stagingmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/staging/models"
)

func makeItems(n int) []stagingmodels.StagingBatchItem {
	items := make([]stagingmodels.StagingBatchItem, n)
	for i := range items {
		items[i] = stagingmodels.StagingBatchItem{QuestionText: "q"}
	}
	return items
}

func TestChunkItems_GroupSizes(t *testing.T) {
	cases := []struct {
		n          int
		wantGroups int
	}{
		{0, 0},
		{1, 1},
		{449, 1},
		{450, 1},
		{451, 2},
		{900, 2},
		{901, 3},
		{1350, 3},
	}

	for _, tc := range cases {
		chunks := ChunkItems(makeItems(tc.n), PublishGroupSize)
		require.Len(t, chunks, tc.wantGroups, "N=%d phải cho %d nhóm", tc.n, tc.wantGroups)

		total := 0
		for k, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), PublishGroupSize, "nhóm %d vượt quá giới hạn", k)
			assert.NotEmpty(t, chunk, "nhóm %d rỗng", k)
			total += len(chunk)
		}
		assert.Equal(t, tc.n, total, "tổng item trong các nhóm phải bằng N")
	}
}

func TestChunkItems_PreservesOrder(t *testing.T) {
	items := makeItems(3)
	items[0].QuestionText = "a"
	items[1].QuestionText = "b"
	items[2].QuestionText = "c"

	chunks := ChunkItems(items, 2)
	require.Len(t, chunks, 2)
	assert.Equal(t, "a", chunks[0][0].QuestionText)
	assert.Equal(t, "b", chunks[0][1].QuestionText)
	assert.Equal(t, "c", chunks[1][0].QuestionText)
}

func TestCanCleanup_RetentionBoundary(t *testing.T) {
	retention := 14 * 24 * time.Hour
	statusAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	batch := stagingmodels.StagingBatch{
		Status:     stagingmodels.BatchStatusApproved,
		ApprovedAt: statusAt.UnixMilli(),
	}

	exactly := statusAt.Add(retention)
	justBefore := exactly.Add(-time.Millisecond)

	assert.True(t, CanCleanup(batch, exactly, retention), "đúng mốc +14 ngày phải đủ điều kiện")
	assert.False(t, CanCleanup(batch, justBefore, retention), "+14 ngày trừ 1ms chưa đủ điều kiện")
}

func TestCanCleanup_StatusRules(t *testing.T) {
	retention := 14 * 24 * time.Hour
	old := time.Now().Add(-30 * 24 * time.Hour).UnixMilli()
	now := time.Now()

	pending := stagingmodels.StagingBatch{Status: stagingmodels.BatchStatusPending, CreatedAt: old}
	assert.False(t, CanCleanup(pending, now, retention), "batch pending không bao giờ bị dọn")

	rejected := stagingmodels.StagingBatch{Status: stagingmodels.BatchStatusRejected, RejectedAt: old}
	assert.True(t, CanCleanup(rejected, now, retention))

	// Thiếu mốc trạng thái thì không đủ điều kiện dù status đúng
	noStamp := stagingmodels.StagingBatch{Status: stagingmodels.BatchStatusApproved}
	assert.False(t, CanCleanup(noStamp, now, retention))
}

func TestBuildLivePayload_Projection(t *testing.T) {
	now := time.Now().UnixMilli()
	item := stagingmodels.StagingBatchItem{
		QuestionText: "  Câu hỏi có khoảng trắng  ",
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: 2,
		Level:        3,
		UserType:     []string{"patient"},
		Explanation:  "giải thích",
		CreatedAt:    1700000000000,
	}

	payload := BuildLivePayload(item, "batch123", now)

	assert.Equal(t, "Câu hỏi có khoảng trắng", payload["questionText"])
	assert.Equal(t, 2, payload["correctIndex"])
	assert.Equal(t, 3, payload["level"])
	assert.Equal(t, []string{"patient"}, payload["usertype"])
	assert.Equal(t, true, payload["published"])
	assert.Equal(t, "batch123", payload["publishedBatchId"])
	assert.Equal(t, now, payload["publishedAt"])
	assert.Equal(t, now, payload["updatedAt"])
	assert.Equal(t, int64(1700000000000), payload["createdAt"], "createdAt của item phải được giữ nguyên")
	_, hasImage := payload["imageUrl"]
	assert.False(t, hasImage, "không có ảnh thì payload không được chứa imageUrl")
}

func TestBuildLivePayload_CreatedAtDefaultsToNow(t *testing.T) {
	now := time.Now().UnixMilli()
	item := stagingmodels.StagingBatchItem{QuestionText: "q", Options: []string{"a", "b"}}

	payload := BuildLivePayload(item, "b1", now)
	assert.Equal(t, now, payload["createdAt"], "item không có createdAt thì dùng thời điểm xuất bản")
}

func TestBuildLivePayload_ImageURLTrimmed(t *testing.T) {
	now := time.Now().UnixMilli()

	blank := stagingmodels.StagingBatchItem{QuestionText: "q", ImageURL: "   "}
	payload := BuildLivePayload(blank, "b1", now)
	_, hasImage := payload["imageUrl"]
	assert.False(t, hasImage, "imageUrl toàn khoảng trắng phải bị loại")

	withImage := stagingmodels.StagingBatchItem{QuestionText: "q", ImageURL: " https://example.com/x.png "}
	payload = BuildLivePayload(withImage, "b1", now)
	assert.Equal(t, "https://example.com/x.png", payload["imageUrl"])
}

func TestCanActOnBatch_AuthorOrReviewer(t *testing.T) {
	batch := stagingmodels.StagingBatch{CreatedByUID: "author"}

	author := authmodels.RoleState{UID: "author", IsOperational: true}
	other := authmodels.RoleState{UID: "other", IsOperational: true}
	reviewer := authmodels.RoleState{UID: "reviewer", IsAdminRole: true}

	assert.True(t, CanActOnBatch(batch, author), "tác giả thao tác được trên batch của mình")
	assert.False(t, CanActOnBatch(batch, other), "portal user khác không được thao tác")
	assert.True(t, CanActOnBatch(batch, reviewer), "người duyệt thao tác được trên mọi batch")

	// UID rỗng không bao giờ khớp tác giả
	assert.False(t, CanActOnBatch(stagingmodels.StagingBatch{}, authmodels.RoleState{}))
}

func TestResubmitUpdate_ClearsRejectionStamps(t *testing.T) {
	update := ResubmitUpdate("")

	assert.Equal(t, stagingmodels.BatchStatusPending, update.Set["status"])
	for _, field := range []string{"rejectedAt", "rejectedByUid", "rejectedByEmail", "reviewNote"} {
		_, ok := update.Unset[field]
		assert.True(t, ok, "trường %s phải được unset khi gửi lại", field)
	}
}

func TestResubmitUpdate_NewNoteReplacesOld(t *testing.T) {
	update := ResubmitUpdate("đã sửa các câu bị loại")

	assert.Equal(t, stagingmodels.BatchStatusPending, update.Set["status"])
	assert.Equal(t, "đã sửa các câu bị loại", update.Set["reviewNote"])
	_, unsetNote := update.Unset["reviewNote"]
	assert.False(t, unsetNote, "note mới không được unset")
	_, unsetAt := update.Unset["rejectedAt"]
	assert.True(t, unsetAt)
}

func TestCheckUpdateTarget_MissingTargetFailsGroup(t *testing.T) {
	assert.NoError(t, CheckUpdateTarget(1, "abc"))

	err := CheckUpdateTarget(0, "64a000000000000000000001")
	require.Error(t, err, "target cập nhật đã biến mất phải làm nhóm thất bại, không được lặng lẽ bỏ qua")
	assert.Contains(t, err.Error(), "64a000000000000000000001")
}

func TestCheckResubmitState_OnlyRejectedGoesBackToPending(t *testing.T) {
	assert.NoError(t, CheckResubmitState(stagingmodels.StagingBatch{Status: stagingmodels.BatchStatusRejected}))

	assert.Error(t, CheckResubmitState(stagingmodels.StagingBatch{Status: stagingmodels.BatchStatusPending}),
		"batch pending không có gì để gửi lại")
	assert.Error(t, CheckResubmitState(stagingmodels.StagingBatch{Status: stagingmodels.BatchStatusApproved}),
		"batch đã xuất bản không gửi lại được")
}
