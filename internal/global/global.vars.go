package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CarolZhiLi/GB-quiz-portal/config"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/registry"
)

// MongoDB_Quiz_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Quiz_CollectionName struct {
	QuizQuestions     string // Tên collection cho câu hỏi đã xuất bản
	StagingBatches    string // Tên collection cho lô chờ duyệt
	StagingBatchItems string // Tên collection cho câu hỏi trong lô chờ duyệt
}

// Các biến toàn cục
var Validate *validator.Validate                                                    // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                                   // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                              // Cấu hình của server
var MongoDB_ColNames MongoDB_Quiz_CollectionName = *new(MongoDB_Quiz_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
