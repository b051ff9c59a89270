// Package generation - Test gỡ code fence và kiểm tra cấu trúc câu hỏi sinh ra.
package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"không fence", `[{"a":1}]`, `[{"a":1}]`},
		{"fence thuần", "```\n[1,2]\n```", "[1,2]"},
		{"fence json", "```json\n[1,2]\n```", "[1,2]"},
		{"fence và khoảng trắng", "  ```json\n[1,2]\n```  ", "[1,2]"},
		{"fence cùng dòng với JSON", "```[1,2]```", "[1,2]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripCodeFences(tc.in))
		})
	}
}

const validQuestionJSON = `{"questionText": "Q1?", "options": ["a","b","c","d"], "correctIndex": 2, "explanation": "vì vậy"}`

func TestParseQuestions_ValidArray(t *testing.T) {
	content := "```json\n[" + validQuestionJSON + "]\n```"

	result, err := ParseQuestions(content, 3, []string{"youth"})
	require.NoError(t, err)
	require.Len(t, result.Questions, 1)
	assert.Zero(t, result.Dropped)

	q := result.Questions[0]
	assert.Equal(t, "Q1?", q.QuestionText)
	assert.Equal(t, 2, q.CorrectIndex)
	assert.Equal(t, 3, q.Level, "level được đóng dấu từ yêu cầu, không lấy từ model")
	assert.Equal(t, []string{"youth"}, q.UserType)
	assert.Equal(t, "vì vậy", q.Explanation)
}

func TestParseQuestions_WrapperObject(t *testing.T) {
	content := `{"questions": [` + validQuestionJSON + `]}`

	result, err := ParseQuestions(content, 1, []string{"patient"})
	require.NoError(t, err)
	assert.Len(t, result.Questions, 1)
}

func TestParseQuestions_DropsMalformed(t *testing.T) {
	content := `[
		` + validQuestionJSON + `,
		{"questionText": "thiếu đáp án", "options": ["a","b","c"], "correctIndex": 0},
		{"questionText": "thừa đáp án", "options": ["a","b","c","d","e"], "correctIndex": 0},
		{"questionText": "index ngoài biên", "options": ["a","b","c","d"], "correctIndex": 4},
		{"questionText": "thiếu index", "options": ["a","b","c","d"]},
		{"questionText": "  ", "options": ["a","b","c","d"], "correctIndex": 0},
		{"questionText": "đáp án rỗng", "options": ["a","","c","d"], "correctIndex": 0}
	]`

	result, err := ParseQuestions(content, 2, []string{"practitioner"})
	require.NoError(t, err)
	assert.Len(t, result.Questions, 1, "chỉ câu đúng cấu trúc được giữ lại")
	assert.Equal(t, 6, result.Dropped)
}

func TestParseQuestions_NonJSONIsError(t *testing.T) {
	_, err := ParseQuestions("Sorry, I cannot help with that.", 1, []string{"youth"})
	assert.Error(t, err)
}
