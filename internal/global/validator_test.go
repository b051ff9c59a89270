// Package global - Test các custom validator của quiz portal.
package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuizOptionsValid(t *testing.T) {
	assert.True(t, QuizOptionsValid([]string{"a", "b"}))
	assert.True(t, QuizOptionsValid([]string{"a", "b", "c", "d"}))

	assert.False(t, QuizOptionsValid(nil))
	assert.False(t, QuizOptionsValid([]string{"a"}), "cần ít nhất 2 phương án")
	assert.False(t, QuizOptionsValid([]string{"a", "  "}), "phương án toàn khoảng trắng không hợp lệ")
}

func TestUserTypesValid(t *testing.T) {
	assert.True(t, UserTypesValid([]string{"practitioner"}))
	assert.True(t, UserTypesValid([]string{"patient", "youth"}))

	assert.False(t, UserTypesValid(nil), "danh sách rỗng không hợp lệ")
	assert.False(t, UserTypesValid([]string{"teacher"}))
	assert.False(t, UserTypesValid([]string{"youth", "teacher"}), "một giá trị lạ làm hỏng cả danh sách")
}

func TestInitValidator_RegistersCustomRules(t *testing.T) {
	InitValidator()

	type payload struct {
		Options  []string `validate:"quiz_options"`
		UserType []string `validate:"user_types"`
		Text     string   `validate:"no_xss"`
	}

	ok := payload{Options: []string{"a", "b"}, UserType: []string{"youth"}, Text: "bình thường"}
	assert.NoError(t, Validate.Struct(&ok))

	badOptions := payload{Options: []string{"a"}, UserType: []string{"youth"}, Text: "x"}
	assert.Error(t, Validate.Struct(&badOptions))

	badUserType := payload{Options: []string{"a", "b"}, UserType: []string{"robot"}, Text: "x"}
	assert.Error(t, Validate.Struct(&badUserType))

	xss := payload{Options: []string{"a", "b"}, UserType: []string{"youth"}, Text: "<script>alert(1)</script>"}
	assert.Error(t, Validate.Struct(&xss))
}
