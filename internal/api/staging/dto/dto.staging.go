package stagingdto

// BatchCreateInput dữ liệu đầu vào khi tạo staging batch
type BatchCreateInput struct {
	Source string `json:"source,omitempty" bson:"source,omitempty"`
}

// ItemCreateInput dữ liệu đầu vào khi thêm item vào batch.
// Với action delete chỉ cần __targetId; create/update cần đầy đủ payload câu hỏi.
type ItemCreateInput struct {
	QuestionText string   `json:"questionText,omitempty" bson:"questionText,omitempty" validate:"omitempty,no_xss"`
	Options      []string `json:"options,omitempty" bson:"options,omitempty"`
	CorrectIndex int      `json:"correctIndex" bson:"correctIndex"`
	Level        int      `json:"level,omitempty" bson:"level,omitempty"`
	UserType     []string `json:"usertype,omitempty" bson:"usertype,omitempty"`
	Explanation  string   `json:"explanation,omitempty" bson:"explanation,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Action       string   `json:"__action,omitempty" bson:"__action,omitempty" validate:"omitempty,oneof=create update delete"`
	TargetID     string   `json:"__targetId,omitempty" bson:"__targetId,omitempty"`
}

// BatchIDParams params từ URL chứa ID batch
type BatchIDParams struct {
	ID string `uri:"id" validate:"required"`
}
