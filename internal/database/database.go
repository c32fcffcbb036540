package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Shiziso/Bot/internal/config"
	logging "github.com/Shiziso/Bot/internal/logging"
	"github.com/Shiziso/Bot/internal/models"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = logger.Warn

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.TestResultRecord{},
		&models.MoodEntry{},
		&models.AnonymousQuestion{},
		&models.CommandLog{},
		&models.TipLog{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	// Command statistics group by command and day; cover that access path.
	statsIndex := `CREATE INDEX IF NOT EXISTS idx_command_logs_stats ON command_logs (command, created_at DESC);`
	if err := DB.Exec(statsIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on command_logs", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
