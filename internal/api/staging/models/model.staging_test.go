package stagingmodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveAction_DefaultsToCreate(t *testing.T) {
	assert.Equal(t, ItemActionCreate, StagingBatchItem{}.EffectiveAction())
	assert.Equal(t, ItemActionCreate, StagingBatchItem{Action: "create"}.EffectiveAction())
	assert.Equal(t, ItemActionUpdate, StagingBatchItem{Action: "update"}.EffectiveAction())
	assert.Equal(t, ItemActionDelete, StagingBatchItem{Action: "delete"}.EffectiveAction())
	// Giá trị lạ được coi là create, engine duyệt không phải xử lý action rác
	assert.Equal(t, ItemActionCreate, StagingBatchItem{Action: "upsert"}.EffectiveAction())
}

func TestStatusAt_FollowsStatus(t *testing.T) {
	approved := StagingBatch{Status: BatchStatusApproved, ApprovedAt: 100, RejectedAt: 200}
	assert.Equal(t, int64(100), approved.StatusAt())

	rejected := StagingBatch{Status: BatchStatusRejected, ApprovedAt: 100, RejectedAt: 200}
	assert.Equal(t, int64(200), rejected.StatusAt())

	pending := StagingBatch{Status: BatchStatusPending, ApprovedAt: 100}
	assert.Equal(t, int64(0), pending.StatusAt())
}
