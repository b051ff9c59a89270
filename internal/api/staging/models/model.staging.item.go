package stagingmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hành động của một staging item khi batch được duyệt
const (
	ItemActionCreate = "create" // Tạo câu hỏi mới (mặc định)
	ItemActionUpdate = "update" // Cập nhật câu hỏi __targetId
	ItemActionDelete = "delete" // Xóa câu hỏi __targetId
)

// StagingBatchItem là một thay đổi chờ duyệt trong collection staging_batch_items.
// Item mang đầy đủ payload câu hỏi cùng published:false và publishedBatchId:null
// cho đến khi engine duyệt xuất bản nó.
type StagingBatchItem struct {
	ID      primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`      // ID của item
	BatchID primitive.ObjectID `json:"batchId" bson:"batchId" index:"single:1"` // Batch chứa item này

	// ===== PAYLOAD CÂU HỎI =====
	QuestionText string   `json:"questionText,omitempty" bson:"questionText,omitempty"`
	Options      []string `json:"options,omitempty" bson:"options,omitempty"`
	CorrectIndex int      `json:"correctIndex" bson:"correctIndex"`
	Level        int      `json:"level,omitempty" bson:"level,omitempty"`
	UserType     []string `json:"usertype,omitempty" bson:"usertype,omitempty"`
	Explanation  string   `json:"explanation,omitempty" bson:"explanation,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CreatedAt    int64    `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt    int64    `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`

	// ===== TRẠNG THÁI STAGING =====
	Published        bool    `json:"published" bson:"published"`               // Luôn false trong staging
	PublishedBatchID *string `json:"publishedBatchId" bson:"publishedBatchId"` // Luôn null trong staging

	// ===== CHỈ THỊ DUYỆT =====
	Action   string `json:"__action,omitempty" bson:"__action,omitempty"`     // create (mặc định), update, delete
	TargetID string `json:"__targetId,omitempty" bson:"__targetId,omitempty"` // ID câu hỏi đích cho update/delete
}

// EffectiveAction trả về hành động của item, mặc định là create
func (i StagingBatchItem) EffectiveAction() string {
	switch i.Action {
	case ItemActionUpdate, ItemActionDelete:
		return i.Action
	default:
		return ItemActionCreate
	}
}
