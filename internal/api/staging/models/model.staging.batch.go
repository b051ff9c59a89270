package stagingmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của một staging batch
const (
	BatchStatusPending  = "pending"  // Chờ duyệt
	BatchStatusApproved = "approved" // Đã duyệt và xuất bản
	BatchStatusRejected = "rejected" // Bị từ chối
)

// BatchTotals thống kê số lượng item trong batch
type BatchTotals struct {
	Success int `json:"success" bson:"success"` // Số item hợp lệ đã ghi vào staging
	Error   int `json:"error" bson:"error"`     // Số item bị loại do lỗi
	Total   int `json:"total" bson:"total"`     // Tổng số item gửi lên
}

// StagingBatch đại diện cho một lô thay đổi chờ duyệt trong collection staging_batches
type StagingBatch struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của batch

	// ===== TRẠNG THÁI =====
	Status string      `json:"status" bson:"status" index:"single:1"` // pending, approved, rejected
	Totals BatchTotals `json:"totals" bson:"totals"`                  // Thống kê item

	// ===== NGƯỜI GỬI =====
	CreatedByUID   string `json:"createdByUid" bson:"createdByUid" index:"single:1"` // UID người gửi
	CreatedByEmail string `json:"createdByEmail,omitempty" bson:"createdByEmail,omitempty"`
	Source         string `json:"source,omitempty" bson:"source,omitempty"` // Nguồn tạo batch (portal, generation, ...)

	// ===== KẾT QUẢ DUYỆT =====
	ReviewNote      string `json:"reviewNote,omitempty" bson:"reviewNote,omitempty"`           // Ghi chú của người duyệt
	ApprovedAt      int64  `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`           // Thời điểm duyệt
	ApprovedByUID   string `json:"approvedByUid,omitempty" bson:"approvedByUid,omitempty"`     // UID người duyệt
	ApprovedByEmail string `json:"approvedByEmail,omitempty" bson:"approvedByEmail,omitempty"` // Email người duyệt
	RejectedAt      int64  `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`           // Thời điểm từ chối
	RejectedByUID   string `json:"rejectedByUid,omitempty" bson:"rejectedByUid,omitempty"`     // UID người từ chối
	RejectedByEmail string `json:"rejectedByEmail,omitempty" bson:"rejectedByEmail,omitempty"` // Email người từ chối

	// ===== METADATA =====
	CreatedAt int64 `json:"createdAt,omitempty" bson:"createdAt,omitempty"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"` // Thời gian cập nhật
}

// StatusAt trả về thời điểm chuyển sang trạng thái hiện tại (dùng cho retention)
func (b StagingBatch) StatusAt() int64 {
	switch b.Status {
	case BatchStatusApproved:
		return b.ApprovedAt
	case BatchStatusRejected:
		return b.RejectedAt
	default:
		return 0
	}
}
