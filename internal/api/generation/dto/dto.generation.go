package generationdto

// GenerateInput là yêu cầu sinh câu hỏi từ người soạn nội dung
type GenerateInput struct {
	Prompt   string   `json:"prompt" validate:"required,min=3,max=4000"`
	Count    int      `json:"count" validate:"required,min=1,max=50"`
	Level    int      `json:"level" validate:"required,min=1,max=4"`
	UserType []string `json:"usertype" validate:"required,user_types"`
}
