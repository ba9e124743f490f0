package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/st-united/AICP-API-sub001/internal/database"
	"github.com/st-united/AICP-API-sub001/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("newTestDB: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedFramework creates one pillar/aspect pair carrying the full weight of
// the framework, plus a skill hanging off the aspect.
func seedFramework(t *testing.T, db *gorm.DB) (pillarID, aspectID, skillID uint) {
	t.Helper()
	pillar := models.CompetencyPillar{Name: "Skillset"}
	if err := db.Create(&pillar).Error; err != nil {
		t.Fatalf("seed pillar: %v", err)
	}
	aspect := models.CompetencyAspect{Name: "Problem Solving"}
	if err := db.Create(&aspect).Error; err != nil {
		t.Fatalf("seed aspect: %v", err)
	}
	if err := db.Create(&models.AspectPillarWeight{
		AspectID: aspect.ID, PillarID: pillar.ID, WeightWithinDimension: 100,
	}).Error; err != nil {
		t.Fatalf("seed aspect weight: %v", err)
	}
	if err := db.Create(&models.FrameworkPillarWeight{PillarID: pillar.ID, Weight: 1}).Error; err != nil {
		t.Fatalf("seed pillar weight: %v", err)
	}
	skill := models.Skill{Name: "Debugging", AspectID: aspect.ID}
	if err := db.Create(&skill).Error; err != nil {
		t.Fatalf("seed skill: %v", err)
	}
	return pillar.ID, aspect.ID, skill.ID
}

// seedChoiceQuestion inserts a multiple-choice question with two correct
// options and one distractor; returns the question and its option IDs.
func seedChoiceQuestion(t *testing.T, db *gorm.DB, examSetID, skillID uint, maxScore float64) (questionID uint, correct []uint, wrong uint) {
	t.Helper()
	q := models.Question{
		ExamSetID:        examSetID,
		SkillID:          skillID,
		Type:             models.QuestionMultipleChoice,
		Content:          "Pick the true statements",
		MaxPossibleScore: maxScore,
	}
	if err := db.Create(&q).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	options := []models.AnswerOption{
		{QuestionID: q.ID, Content: "true A", IsCorrect: true},
		{QuestionID: q.ID, Content: "true B", IsCorrect: true},
		{QuestionID: q.ID, Content: "false C", IsCorrect: false},
	}
	if err := db.Create(&options).Error; err != nil {
		t.Fatalf("seed options: %v", err)
	}
	return q.ID, []uint{options[0].ID, options[1].ID}, options[2].ID
}

func seedExamSet(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	set := models.ExamSet{Name: "AI Competency Assessment", Duration: 60}
	if err := db.Create(&set).Error; err != nil {
		t.Fatalf("seed exam set: %v", err)
	}
	return set.ID
}

func seedExam(t *testing.T, db *gorm.DB, userID, examSetID uint, status models.ExamStatus, finishedAt time.Time) uint {
	t.Helper()
	exam := models.Exam{
		UserID:     userID,
		ExamSetID:  examSetID,
		Status:     status,
		StartedAt:  time.Now().UTC().Add(-time.Hour),
		FinishedAt: finishedAt,
	}
	if err := db.Create(&exam).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	return exam.ID
}

func seedSpot(t *testing.T, db *gorm.DB, mentorID uint, status models.SpotStatus, startAt time.Time) uint {
	t.Helper()
	spot := models.MentorTimeSpot{
		MentorID: mentorID,
		Status:   status,
		StartAt:  startAt,
		EndAt:    startAt.Add(30 * time.Minute),
		Timezone: "Asia/Ho_Chi_Minh",
	}
	if err := db.Create(&spot).Error; err != nil {
		t.Fatalf("seed spot: %v", err)
	}
	return spot.ID
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
