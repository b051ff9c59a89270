package reviewdto

// BatchIDParams nhận batch id từ URI
type BatchIDParams struct {
	ID string `uri:"id"`
}

// RejectInput là dữ liệu đầu vào khi từ chối một batch
type RejectInput struct {
	Note string `json:"note,omitempty" validate:"omitempty,max=2000"`
}

// ResubmitInput là dữ liệu đầu vào khi gửi lại một batch rejected.
// Note mới (nếu có) thay thế ghi chú từ chối cũ.
type ResubmitInput struct {
	Note string `json:"note,omitempty" validate:"omitempty,max=2000"`
}
