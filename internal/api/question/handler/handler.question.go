package questionhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/CarolZhiLi/GB-quiz-portal/internal/api/base/handler"
	questiondto "github.com/CarolZhiLi/GB-quiz-portal/internal/api/question/dto"
	questionmodels "github.com/CarolZhiLi/GB-quiz-portal/internal/api/question/models"
	questionsvc "github.com/CarolZhiLi/GB-quiz-portal/internal/api/question/service"
)

// QuestionHandler xử lý các request liên quan đến câu hỏi quiz
type QuestionHandler struct {
	*basehdl.BaseHandler[questionmodels.Question, questiondto.QuestionCreateInput, questiondto.QuestionUpdateInput]
	QuestionService *questionsvc.QuestionService
}

// NewQuestionHandler tạo mới QuestionHandler
func NewQuestionHandler() (*QuestionHandler, error) {
	questionService, err := questionsvc.NewQuestionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create question service: %v", err)
	}
	hdl := &QuestionHandler{QuestionService: questionService}
	// Truyền QuestionService (không phải BaseServiceMongoImpl) để các override validate có hiệu lực
	hdl.BaseHandler = basehdl.NewBaseHandler[questionmodels.Question, questiondto.QuestionCreateInput, questiondto.QuestionUpdateInput](questionService)
	return hdl, nil
}

// List trả về toàn bộ câu hỏi, mới nhất trước, câu hỏi không có createdAt xếp cuối
func (h *QuestionHandler) List(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		questions, err := h.QuestionService.ListQuestions(c.Context())
		h.HandleResponse(c, questions, err)
		return nil
	})
}
