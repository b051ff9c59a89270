package submissiondto

import "strings"

// QuestionDraft là một thay đổi câu hỏi do người soạn gửi lên.
// Action rỗng được hiểu là create. ImageData là ảnh thô base64,
// chỉ người duyệt mới được gửi (luồng staging chỉ nhận URL).
// ImageURL là con trỏ để phân biệt "không đổi" (vắng mặt) với
// "xóa ảnh" (chuỗi rỗng gửi tường minh).
type QuestionDraft struct {
	Action       string   `json:"action,omitempty" validate:"omitempty,oneof=create update delete"`
	TargetID     string   `json:"targetId,omitempty"`
	QuestionText string   `json:"questionText,omitempty"`
	Options      []string `json:"options,omitempty"`
	CorrectIndex int      `json:"correctIndex"`
	Level        int      `json:"level,omitempty"`
	UserType     []string `json:"usertype,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
	ImageData    string   `json:"imageData,omitempty"`
	ImageType    string   `json:"imageType,omitempty"`
}

// ImageURLValue trả về URL ảnh đã trim, hoặc chuỗi rỗng nếu không gửi
func (d QuestionDraft) ImageURLValue() string {
	if d.ImageURL == nil {
		return ""
	}
	return strings.TrimSpace(*d.ImageURL)
}

// ClearsImage báo hiệu draft muốn xóa ảnh hiện có: trường imageUrl
// được gửi tường minh với giá trị rỗng
func (d QuestionDraft) ClearsImage() bool {
	return d.ImageURL != nil && strings.TrimSpace(*d.ImageURL) == ""
}

// SubmitInput là yêu cầu gửi một loạt thay đổi câu hỏi
type SubmitInput struct {
	Source string          `json:"source,omitempty" validate:"omitempty,max=200"`
	Drafts []QuestionDraft `json:"drafts" validate:"required,min=1,max=500,dive"`
}

// DraftResult là kết quả xử lý của một draft
type DraftResult struct {
	Index      int    `json:"index"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	QuestionID string `json:"questionId,omitempty"`
	ItemID     string `json:"itemId,omitempty"`
}

// Trạng thái kết quả của một draft
const (
	DraftStatusSuccess = "success"
	DraftStatusError   = "error"
)

// Chế độ xử lý của một lượt submit
const (
	SubmitModeDirect = "direct"
	SubmitModeStaged = "staged"
)

// SubmitResult là kết quả của cả lượt submit
type SubmitResult struct {
	Mode    string        `json:"mode"`
	BatchID string        `json:"batchId,omitempty"`
	Success int           `json:"success"`
	Error   int           `json:"error"`
	Total   int           `json:"total"`
	Results []DraftResult `json:"results"`
}
