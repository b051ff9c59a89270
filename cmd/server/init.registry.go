package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/CarolZhiLi/GB-quiz-portal/config"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/database"
	"github.com/CarolZhiLi/GB-quiz-portal/internal/global"
)

func InitRegistry() {
	// Khởi tạo registry và đăng ký các collections
	err := InitCollections(global.MongoDB_Session, global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.QuizQuestions,
		global.MongoDB_ColNames.StagingBatches,
		global.MongoDB_ColNames.StagingBatchItems,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	// Đảm bảo index cho các collection quiz portal
	database.EnsureQuizIndexes(context.TODO(), db,
		global.MongoDB_ColNames.QuizQuestions,
		global.MongoDB_ColNames.StagingBatches,
		global.MongoDB_ColNames.StagingBatchItems,
	)

	return nil
}
