package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/st-united/AICP-API-sub001/internal/config"
	logging "github.com/st-united/AICP-API-sub001/internal/logging"
	"github.com/st-united/AICP-API-sub001/internal/models"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	// Create our custom GORM logger
	gormLogger := logging.NewGormZapLogger(log)
	gormLogger.LogLevel = gormlogger.Warn

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
	err := Migrate(DB)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	spotIndex := `CREATE INDEX IF NOT EXISTS idx_spot_window ON mentor_time_spots (mentor_id, status, start_at);`
	if err := DB.Exec(spotIndex).Error; err != nil {
		log.Fatal("Failed to create custom index on mentor_time_spots", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}

// Migrate creates the schema for every entity this service owns. Exposed
// so tests can run the same migration against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CompetencyPillar{},
		&models.CompetencyAspect{},
		&models.AspectPillarWeight{},
		&models.FrameworkPillarWeight{},
		&models.Skill{},
		&models.ExamSet{},
		&models.Question{},
		&models.AnswerOption{},
		&models.Exam{},
		&models.UserAnswer{},
		&models.UserAnswerSelection{},
		&models.ExamPillarSnapshot{},
		&models.ExamAspectSnapshot{},
		&models.LevelScale{},
		&models.MentorSchedule{},
		&models.MentorTimeSpot{},
		&models.InterviewRequest{},
		&models.MentorBooking{},
	)
}
