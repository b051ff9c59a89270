package questionmodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionLevel giới hạn độ khó của câu hỏi
const (
	QuestionLevelMin = 1
	QuestionLevelMax = 4
)

// UserTypes hợp lệ cho câu hỏi
const (
	UserTypePractitioner = "practitioner"
	UserTypePatient      = "patient"
	UserTypeYouth        = "youth"
)

// Question đại diện cho một câu hỏi quiz đã xuất bản trong collection quiz_questions
type Question struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của câu hỏi

	// ===== NỘI DUNG =====
	QuestionText string   `json:"questionText" bson:"questionText"`               // Nội dung câu hỏi
	Options      []string `json:"options" bson:"options"`                         // Các phương án trả lời
	CorrectIndex int      `json:"correctIndex" bson:"correctIndex"`               // Chỉ số phương án đúng (0-based)
	Level        int      `json:"level" bson:"level" index:"single:1"`            // Độ khó 1..4
	UserType     []string `json:"usertype" bson:"usertype"`                       // Nhóm người dùng: practitioner, patient, youth
	Explanation  string   `json:"explanation,omitempty" bson:"explanation,omitempty"` // Giải thích đáp án
	ImageURL     string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`   // URL hình minh họa (tùy chọn)

	// ===== XUẤT BẢN =====
	Published        bool   `json:"published" bson:"published"`                                         // Đã xuất bản hay chưa
	PublishedAt      int64  `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`                 // Thời điểm xuất bản
	PublishedBatchID string `json:"publishedBatchId,omitempty" bson:"publishedBatchId,omitempty"`       // Batch staging đã xuất bản câu hỏi này

	// ===== METADATA =====
	CreatedAt int64 `json:"createdAt,omitempty" bson:"createdAt,omitempty" index:"single:-1"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`                   // Thời gian cập nhật
}
