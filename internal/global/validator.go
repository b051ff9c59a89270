package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validUserTypes là tập các nhóm đối tượng hợp lệ của một câu hỏi.
var validUserTypes = map[string]bool{
	"practitioner": true,
	"patient":      true,
	"youth":        true,
}

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("quiz_options", validateQuizOptions)
	_ = Validate.RegisterValidation("user_types", validateUserTypes)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"innerHTML",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateQuizOptions kiểm tra danh sách phương án: ít nhất 2 phương án, không có phương án rỗng
func validateQuizOptions(fl validator.FieldLevel) bool {
	options, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	return QuizOptionsValid(options)
}

// QuizOptionsValid kiểm tra danh sách phương án hợp lệ (dùng chung cho validator và service)
func QuizOptionsValid(options []string) bool {
	if len(options) < 2 {
		return false
	}
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return false
		}
	}
	return true
}

// validateUserTypes kiểm tra danh sách nhóm đối tượng: không rỗng, chỉ chứa giá trị hợp lệ
func validateUserTypes(fl validator.FieldLevel) bool {
	userTypes, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	return UserTypesValid(userTypes)
}

// UserTypesValid kiểm tra danh sách nhóm đối tượng hợp lệ (dùng chung cho validator và service)
func UserTypesValid(userTypes []string) bool {
	if len(userTypes) == 0 {
		return false
	}
	for _, ut := range userTypes {
		if !validUserTypes[ut] {
			return false
		}
	}
	return true
}
