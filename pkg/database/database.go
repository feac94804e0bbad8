package database

import (
	"exam_integrity_backend/internal/config"
	"exam_integrity_backend/internal/model"
	"exam_integrity_backend/pkg/logger"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

// InitDB 连接考试平台数据库；本服务只读，迁移仅用于本地开发环境
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.String("db", cfg.DBName),
	)

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.ExamAttempt{},
		&model.ProctorEvent{},
		&model.AnswerSegment{},
	)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database migration completed")
	return db, nil
}
