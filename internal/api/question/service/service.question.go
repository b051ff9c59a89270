package questionsvc

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/base/service"
	questionmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/question/models"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/common"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/global"
)

// QuestionService là service quản lý câu hỏi quiz đã xuất bản
type QuestionService struct {
	*basesvc.BaseServiceMongoImpl[questionmodels.Question]
}

// NewQuestionService tạo mới QuestionService
func NewQuestionService() (*QuestionService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.QuizQuestions)
	if !exist {
		return nil, fmt.Errorf("failed to get quiz_questions collection: %v", common.ErrNotFound)
	}

	return &QuestionService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[questionmodels.Question](collection),
	}, nil
}

// ValidatePayload kiểm tra tính hợp lệ của nội dung câu hỏi.
// Dùng chung cho tạo trực tiếp, staging và generation.
func ValidatePayload(questionText string, options []string, correctIndex, level int, userTypes []string) error {
	if strings.TrimSpace(questionText) == "" {
		return common.NewError(common.ErrCodeValidationInput, "Nội dung câu hỏi không được để trống", common.StatusBadRequest, nil)
	}
	if !global.QuizOptionsValid(options) {
		return common.NewError(common.ErrCodeValidationInput, "Cần ít nhất 2 phương án trả lời và không phương án nào được để trống", common.StatusBadRequest, nil)
	}
	if correctIndex < 0 || correctIndex >= len(options) {
		return common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Chỉ số phương án đúng %d nằm ngoài khoảng [0, %d)", correctIndex, len(options)),
			common.StatusBadRequest, nil)
	}
	if level < questionmodels.QuestionLevelMin || level > questionmodels.QuestionLevelMax {
		return common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Độ khó %d không hợp lệ, phải trong khoảng %d..%d", level, questionmodels.QuestionLevelMin, questionmodels.QuestionLevelMax),
			common.StatusBadRequest, nil)
	}
	if !global.UserTypesValid(userTypes) {
		return common.NewError(common.ErrCodeValidationInput, "Nhóm người dùng phải là tập con khác rỗng của practitioner|patient|youth", common.StatusBadRequest, nil)
	}
	return nil
}

// ValidateQuestion kiểm tra tính hợp lệ của một model câu hỏi
func ValidateQuestion(q questionmodels.Question) error {
	return ValidatePayload(q.QuestionText, q.Options, q.CorrectIndex, q.Level, q.UserType)
}

// InsertOne ghi đè để validate nội dung câu hỏi trước khi tạo
func (s *QuestionService) InsertOne(ctx context.Context, data questionmodels.Question) (questionmodels.Question, error) {
	if err := ValidateQuestion(data); err != nil {
		return questionmodels.Question{}, err
	}
	return s.BaseServiceMongoImpl.InsertOne(ctx, data)
}

// InsertMany ghi đè để validate từng câu hỏi trước khi ghi hàng loạt
func (s *QuestionService) InsertMany(ctx context.Context, data []questionmodels.Question) ([]questionmodels.Question, error) {
	for i, q := range data {
		if err := ValidateQuestion(q); err != nil {
			return nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Câu hỏi thứ %d không hợp lệ: %v", i+1, err),
				common.StatusBadRequest, nil)
		}
	}
	return s.BaseServiceMongoImpl.InsertMany(ctx, data)
}

// asInt đọc một giá trị số từ update map; bson/json decode có thể cho
// int, int32, int64 hoặc float64 tùy nguồn
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// asStringSlice đọc một mảng chuỗi từ update map
func asStringSlice(v interface{}) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []interface{}:
		return interfaceSliceToStrings(s)
	case primitive.A:
		return interfaceSliceToStrings(s)
	}
	return nil, false
}

func interfaceSliceToStrings(in []interface{}) ([]string, bool) {
	out := make([]string, 0, len(in))
	for _, v := range in {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// MergeQuestionFields áp các trường $set lên một bản sao của câu hỏi,
// để kiểm tra invariant trên tài liệu sau khi merge chứ không trên từng trường lẻ.
func MergeQuestionFields(q questionmodels.Question, set map[string]interface{}) questionmodels.Question {
	for key, v := range set {
		switch key {
		case "questionText":
			if s, ok := v.(string); ok {
				q.QuestionText = s
			}
		case "options":
			if s, ok := asStringSlice(v); ok {
				q.Options = s
			}
		case "correctIndex":
			if n, ok := asInt(v); ok {
				q.CorrectIndex = n
			}
		case "level":
			if n, ok := asInt(v); ok {
				q.Level = n
			}
		case "usertype":
			if s, ok := asStringSlice(v); ok {
				q.UserType = s
			}
		}
	}
	return q
}

// UpdateById ghi đè để validate tài liệu sau khi merge: một $set lẻ
// (vd chỉ đổi correctIndex) không được phá vỡ invariant của câu hỏi đang live.
func (s *QuestionService) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (questionmodels.Question, error) {
	var zero questionmodels.Question

	updateData, err := basesvc.ToUpdateData(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if err := ValidateQuestion(MergeQuestionFields(existing, updateData.Set)); err != nil {
		return zero, err
	}

	return s.BaseServiceMongoImpl.UpdateById(ctx, id, updateData)
}

// ListQuestions trả về toàn bộ câu hỏi, mới nhất trước.
// Câu hỏi không có createdAt xếp cuối, giữ nguyên thứ tự tương đối (stable).
func (s *QuestionService) ListQuestions(ctx context.Context) ([]questionmodels.Question, error) {
	questions, err := s.Find(ctx, bson.D{}, nil)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(questions, func(i, j int) bool {
		a, b := questions[i].CreatedAt, questions[j].CreatedAt
		if a == 0 || b == 0 {
			// Bản ghi không có createdAt luôn xếp sau
			return a != 0 && b == 0
		}
		return a > b
	})

	return questions, nil
}
