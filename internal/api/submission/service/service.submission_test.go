// Package submissionsvc - Test các quy tắc submission không chạm database.
package submissionsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	submissiondto "github.com/CarolZhiLi/GB-quiz-portal/internal/api/submission/dto"
)

func TestStageDraft_RejectsRawImage(t *testing.T) {
	s := &SubmissionService{}
	draft := submissiondto.QuestionDraft{
		QuestionText: "q",
		Options:      []string{"a", "b", "c", "d"},
		CorrectIndex: 0,
		Level:        1,
		UserType:     []string{"youth"},
		ImageData:    "aGVsbG8=",
		ImageType:    "image/png",
	}

	_, err := s.stageDraft(context.Background(), primitive.NewObjectID(), draft)
	assert.Error(t, err, "luồng staging phải từ chối ảnh thô")
}

func TestUploadImage_WithoutStoreFails(t *testing.T) {
	s := &SubmissionService{}
	draft := submissiondto.QuestionDraft{ImageData: "aGVsbG8=", ImageType: "image/png"}

	_, err := s.uploadImage(context.Background(), "abc", draft)
	assert.Error(t, err, "chưa cấu hình asset store thì không nhận ảnh thô")
}

func TestApplyDirect_UnknownActionRejected(t *testing.T) {
	s := &SubmissionService{}
	_, err := s.applyDirect(context.Background(), submissiondto.QuestionDraft{Action: "upsert"})
	assert.Error(t, err)
}

func TestDirectUpdate_InvalidTargetRejected(t *testing.T) {
	s := &SubmissionService{}
	draft := submissiondto.QuestionDraft{
		Action:       "update",
		TargetID:     "not-an-object-id",
		QuestionText: "q",
		Options:      []string{"a", "b"},
		CorrectIndex: 0,
		Level:        1,
		UserType:     []string{"youth"},
	}

	_, err := s.directUpdate(context.Background(), draft)
	assert.Error(t, err, "targetId sai định dạng phải bị từ chối trước khi chạm database")
}

func TestDirectDelete_InvalidTargetRejected(t *testing.T) {
	s := &SubmissionService{}
	_, err := s.directDelete(context.Background(), submissiondto.QuestionDraft{Action: "delete", TargetID: "xyz"})
	assert.Error(t, err)
}

func TestQuestionDraft_ImageClearSignal(t *testing.T) {
	empty := ""
	blank := "   "
	url := " https://storage.googleapis.com/b/images/questions/a.png "

	// Không gửi imageUrl: giữ nguyên ảnh, không phải tín hiệu xóa
	absent := submissiondto.QuestionDraft{}
	assert.False(t, absent.ClearsImage())
	assert.Equal(t, "", absent.ImageURLValue())

	// Gửi imageUrl rỗng tường minh: xóa ảnh
	cleared := submissiondto.QuestionDraft{ImageURL: &empty}
	assert.True(t, cleared.ClearsImage())

	// Chuỗi toàn khoảng trắng cũng là tín hiệu xóa
	clearBlank := submissiondto.QuestionDraft{ImageURL: &blank}
	assert.True(t, clearBlank.ClearsImage())

	// URL thật: thay ảnh, giá trị được trim
	replace := submissiondto.QuestionDraft{ImageURL: &url}
	assert.False(t, replace.ClearsImage())
	assert.Equal(t, "https://storage.googleapis.com/b/images/questions/a.png", replace.ImageURLValue())

}
