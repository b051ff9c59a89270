// Package questionsvc - Test quy tắc validate nội dung câu hỏi.
package questionsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	questionmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/question/models"
)

func TestValidatePayload_AcceptsValidQuestion(t *testing.T) {
	err := ValidatePayload("Thủ đô của Việt Nam?", []string{"Hà Nội", "Huế", "Đà Nẵng", "Cần Thơ"}, 0, 1, []string{"youth"})
	assert.NoError(t, err)
}

func TestValidatePayload_Rejections(t *testing.T) {
	options := []string{"a", "b", "c", "d"}
	userTypes := []string{"patient"}

	cases := []struct {
		name         string
		questionText string
		options      []string
		correctIndex int
		level        int
		userTypes    []string
	}{
		{"nội dung rỗng", "   ", options, 0, 1, userTypes},
		{"một phương án", "q", []string{"a"}, 0, 1, userTypes},
		{"phương án rỗng", "q", []string{"a", " "}, 0, 1, userTypes},
		{"correctIndex âm", "q", options, -1, 1, userTypes},
		{"correctIndex ngoài biên", "q", options, 4, 1, userTypes},
		{"level dưới ngưỡng", "q", options, 0, 0, userTypes},
		{"level trên ngưỡng", "q", options, 0, 5, userTypes},
		{"userType rỗng", "q", options, 0, 1, nil},
		{"userType lạ", "q", options, 0, 1, []string{"teacher"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePayload(tc.questionText, tc.options, tc.correctIndex, tc.level, tc.userTypes)
			assert.Error(t, err)
		})
	}
}

func TestValidatePayload_CorrectIndexBoundFollowsOptionCount(t *testing.T) {
	// correctIndex hợp lệ theo số phương án thực tế, không cố định 4
	err := ValidatePayload("q", []string{"a", "b"}, 1, 1, []string{"youth"})
	assert.NoError(t, err)

	err = ValidatePayload("q", []string{"a", "b"}, 2, 1, []string{"youth"})
	assert.Error(t, err)
}

func liveQuestion() questionmodels.Question {
	return questionmodels.Question{
		QuestionText: "Thủ đô của Việt Nam?",
		Options:      []string{"Hà Nội", "Huế", "Đà Nẵng"},
		CorrectIndex: 0,
		Level:        2,
		UserType:     []string{"youth"},
	}
}

func TestMergeQuestionFields_PartialSetKeepsRest(t *testing.T) {
	merged := MergeQuestionFields(liveQuestion(), map[string]interface{}{
		"level": 3,
	})

	assert.Equal(t, 3, merged.Level)
	assert.Equal(t, "Thủ đô của Việt Nam?", merged.QuestionText)
	assert.Len(t, merged.Options, 3)
	assert.NoError(t, ValidateQuestion(merged))
}

func TestMergeQuestionFields_NumericAndSliceCoercion(t *testing.T) {
	// Giá trị trong update map có thể là int32/int64/float64 và primitive.A
	// tùy nguồn decode (bson hoặc json)
	merged := MergeQuestionFields(liveQuestion(), map[string]interface{}{
		"correctIndex": float64(2),
		"level":        int32(4),
		"options":      primitive.A{"A", "B", "C"},
		"usertype":     []interface{}{"patient"},
	})

	assert.Equal(t, 2, merged.CorrectIndex)
	assert.Equal(t, 4, merged.Level)
	assert.Equal(t, []string{"A", "B", "C"}, merged.Options)
	assert.Equal(t, []string{"patient"}, merged.UserType)
	assert.NoError(t, ValidateQuestion(merged))
}

func TestMergeQuestionFields_LoneCorrectIndexBreakingInvariantIsRejected(t *testing.T) {
	// $set lẻ chỉ đổi correctIndex không được phá vỡ invariant trên tài liệu live
	merged := MergeQuestionFields(liveQuestion(), map[string]interface{}{
		"correctIndex": 99,
	})

	assert.Error(t, ValidateQuestion(merged), "correctIndex vượt ngoài options hiện có phải bị từ chối trước khi ghi")
}

func TestMergeQuestionFields_ShrinkingOptionsChecksIndex(t *testing.T) {
	merged := MergeQuestionFields(liveQuestion(), map[string]interface{}{
		"options":      []string{"Chỉ một", "Hai"},
		"correctIndex": 2,
	})

	assert.Error(t, ValidateQuestion(merged))
}
