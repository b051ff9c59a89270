package questiondto

// QuestionCreateInput dữ liệu đầu vào khi tạo câu hỏi
type QuestionCreateInput struct {
	QuestionText string   `json:"questionText" bson:"questionText" validate:"required,no_xss"`
	Options      []string `json:"options" bson:"options" validate:"quiz_options"`
	CorrectIndex *int     `json:"correctIndex" bson:"correctIndex" validate:"required"`
	Level        int      `json:"level" bson:"level" validate:"required,min=1,max=4"`
	UserType     []string `json:"usertype" bson:"usertype" validate:"user_types"`
	Explanation  string   `json:"explanation,omitempty" bson:"explanation,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

// QuestionUpdateInput dữ liệu đầu vào khi cập nhật câu hỏi.
// Chỉ các trường có giá trị mới được $set, các trường khác giữ nguyên.
type QuestionUpdateInput struct {
	QuestionText *string  `json:"questionText,omitempty" bson:"questionText,omitempty" validate:"omitempty,no_xss"`
	Options      []string `json:"options,omitempty" bson:"options,omitempty" validate:"omitempty,quiz_options"`
	CorrectIndex *int     `json:"correctIndex,omitempty" bson:"correctIndex,omitempty"`
	Level        *int     `json:"level,omitempty" bson:"level,omitempty" validate:"omitempty,min=1,max=4"`
	UserType     []string `json:"usertype,omitempty" bson:"usertype,omitempty" validate:"omitempty,user_types"`
	Explanation  *string  `json:"explanation,omitempty" bson:"explanation,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}
