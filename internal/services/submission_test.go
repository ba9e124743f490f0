package services

import (
	"math"
	"testing"
	"time"

	"github.com/st-united/AICP-API-sub001/internal/apperr"
	"github.com/st-united/AICP-API-sub001/internal/models"
	"github.com/st-united/AICP-API-sub001/internal/repository"
)

func TestStartExam(t *testing.T) {
	db := newTestDB(t)
	_, _, skillID := seedFramework(t, db)
	examSetID := seedExamSet(t, db)
	q1, _, _ := seedChoiceQuestion(t, db, examSetID, skillID, 10)
	q2, _, _ := seedChoiceQuestion(t, db, examSetID, skillID, 10)
	q3, _, _ := seedChoiceQuestion(t, db, examSetID, skillID, 10)

	svc := NewAnswerService(db, testLogger())
	exam, err := svc.StartExam(7, examSetID)
	if err != nil {
		t.Fatalf("start exam: %v", err)
	}
	if exam.Status != models.ExamInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", exam.Status)
	}

	// Shuffling may keep the insertion order, so only set equality holds.
	if len(exam.QuestionOrder) != 3 {
		t.Fatalf("expected all 3 questions in the order, got %d", len(exam.QuestionOrder))
	}
	seen := make(map[int64]bool, len(exam.QuestionOrder))
	for _, id := range exam.QuestionOrder {
		seen[id] = true
	}
	for _, id := range []uint{q1, q2, q3} {
		if !seen[int64(id)] {
			t.Errorf("question %d missing from the shuffled order %v", id, exam.QuestionOrder)
		}
	}

	// The exam set allots 60 minutes.
	if got := exam.FinishedAt.Sub(exam.StartedAt); got != 60*time.Minute {
		t.Errorf("expected a 60 minute deadline, got %v", got)
	}

	var persisted models.Exam
	if err := db.First(&persisted, exam.ID).Error; err != nil {
		t.Fatalf("load exam: %v", err)
	}
	if persisted.UserID != 7 || persisted.Status != models.ExamInProgress {
		t.Errorf("persisted attempt mismatch: user %d status %s", persisted.UserID, persisted.Status)
	}
	if len(persisted.QuestionOrder) != 3 {
		t.Errorf("question order not persisted: %v", persisted.QuestionOrder)
	}
}

func TestStartExamMissingSet(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnswerService(db, testLogger())
	if _, err := svc.StartExam(7, 999); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSaveAnswerValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnswerService(db, testLogger())

	err := svc.SaveAnswer(SaveAnswerInput{UserID: 1, ExamID: 1, QuestionID: 1})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for empty answers, got %v", err)
	}
}

func TestSaveAnswerReplacesPriorRows(t *testing.T) {
	db := newTestDB(t)
	_, _, skillID := seedFramework(t, db)
	examSetID := seedExamSet(t, db)
	questionID, correct, wrong := seedChoiceQuestion(t, db, examSetID, skillID, 10)
	examID := seedExam(t, db, 7, examSetID, models.ExamInProgress, time.Now().UTC().Add(time.Hour))

	svc := NewAnswerService(db, testLogger())

	if err := svc.SaveAnswer(SaveAnswerInput{
		UserID: 7, ExamID: examID, QuestionID: questionID, SelectedOptionIDs: []uint{wrong},
	}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := svc.SaveAnswer(SaveAnswerInput{
		UserID: 7, ExamID: examID, QuestionID: questionID, SelectedOptionIDs: correct,
	}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var answers []models.UserAnswer
	if err := db.Preload("Selections").Where("exam_id = ?", examID).Find(&answers).Error; err != nil {
		t.Fatalf("load answers: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("expected 1 answer row after re-answering, got %d", len(answers))
	}
	if len(answers[0].Selections) != len(correct) {
		t.Fatalf("expected %d selections, got %d", len(correct), len(answers[0].Selections))
	}

	var selectionCount int64
	db.Model(&models.UserAnswerSelection{}).Count(&selectionCount)
	if selectionCount != int64(len(correct)) {
		t.Fatalf("stale selection rows left behind: %d", selectionCount)
	}
}

func TestSaveAnswerOnSubmittedExam(t *testing.T) {
	db := newTestDB(t)
	_, _, skillID := seedFramework(t, db)
	examSetID := seedExamSet(t, db)
	questionID, correct, _ := seedChoiceQuestion(t, db, examSetID, skillID, 10)
	examID := seedExam(t, db, 7, examSetID, models.ExamSubmitted, time.Now().UTC())

	svc := NewAnswerService(db, testLogger())
	err := svc.SaveAnswer(SaveAnswerInput{
		UserID: 7, ExamID: examID, QuestionID: questionID, SelectedOptionIDs: correct,
	})
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSubmitScoresExam(t *testing.T) {
	db := newTestDB(t)
	pillarID, aspectID, skillID := seedFramework(t, db)
	examSetID := seedExamSet(t, db)
	questionID, correct, _ := seedChoiceQuestion(t, db, examSetID, skillID, 10)
	examID := seedExam(t, db, 7, examSetID, models.ExamInProgress, time.Now().UTC().Add(time.Hour))

	answerSvc := NewAnswerService(db, testLogger())
	if err := answerSvc.SaveAnswer(SaveAnswerInput{
		UserID: 7, ExamID: examID, QuestionID: questionID, SelectedOptionIDs: correct,
	}); err != nil {
		t.Fatalf("save answer: %v", err)
	}

	svc := NewSubmissionService(db, testLogger())
	if err := svc.Submit(examID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var exam models.Exam
	if err := db.First(&exam, examID).Error; err != nil {
		t.Fatalf("load exam: %v", err)
	}
	if exam.Status != models.ExamSubmitted {
		t.Errorf("expected SUBMITTED, got %s", exam.Status)
	}
	// Exact correct set → f1=1 → answer score 10, aspect raw 7, pillar
	// weighted 7, overall 7*1.0 = 7 → level 7.
	if math.Abs(exam.OverallScore-7) > 0.001 {
		t.Errorf("expected overall 7, got %f", exam.OverallScore)
	}
	if exam.CompetenceLevel != 7 {
		t.Errorf("expected level 7, got %d", exam.CompetenceLevel)
	}

	var answer models.UserAnswer
	if err := db.Where("exam_id = ?", examID).First(&answer).Error; err != nil {
		t.Fatalf("load answer: %v", err)
	}
	if answer.Status != models.AnswerSubmit {
		t.Errorf("draft answer was not promoted, status %s", answer.Status)
	}
	if math.Abs(answer.Score-10) > 0.001 {
		t.Errorf("expected answer score 10, got %f", answer.Score)
	}

	pillars, aspects, err := repository.NewSnapshotRepository(db).FindByExam(examID)
	if err != nil {
		t.Fatalf("load snapshots: %v", err)
	}
	if len(pillars) != 1 || pillars[0].PillarID != pillarID {
		t.Fatalf("expected one pillar snapshot, got %+v", pillars)
	}
	if len(aspects) != 1 || aspects[0].AspectID != aspectID {
		t.Fatalf("expected one aspect snapshot, got %+v", aspects)
	}
	if math.Abs(pillars[0].WeightedScore-7) > 0.001 {
		t.Errorf("expected pillar weighted 7, got %f", pillars[0].WeightedScore)
	}
}

func TestSubmitLinksLevelScale(t *testing.T) {
	db := newTestDB(t)
	_, _, skillID := seedFramework(t, db)
	examSetID := seedExamSet(t, db)
	questionID, correct, _ := seedChoiceQuestion(t, db, examSetID, skillID, 10)
	examID := seedExam(t, db, 7, examSetID, models.ExamInProgress, time.Now().UTC().Add(time.Hour))

	if err := repository.NewFrameworkRepository(db).SeedDefaultLevelScales(); err != nil {
		t.Fatalf("seed level scales: %v", err)
	}

	answerSvc := NewAnswerService(db, testLogger())
	if err := answerSvc.SaveAnswer(SaveAnswerInput{
		UserID: 7, ExamID: examID, QuestionID: questionID, SelectedOptionIDs: correct,
	}); err != nil {
		t.Fatalf("save answer: %v", err)
	}
	if err := NewSubmissionService(db, testLogger()).Submit(examID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var exam models.Exam
	if err := db.First(&exam, examID).Error; err != nil {
		t.Fatalf("load exam: %v", err)
	}
	if exam.LevelScaleID == nil {
		t.Fatalf("expected a level-scale reference for level %d", exam.CompetenceLevel)
	}
	var scale models.LevelScale
	if err := db.First(&scale, *exam.LevelScaleID).Error; err != nil {
		t.Fatalf("load level scale: %v", err)
	}
	if scale.Level != exam.CompetenceLevel {
		t.Errorf("level scale row holds level %d, exam derived %d", scale.Level, exam.CompetenceLevel)
	}
}

// An active custom ladder must win over the built-in thresholds.
func TestSubmitUsesActiveLevelScaleOverride(t *testing.T) {
	db := newTestDB(t)
	_, _, skillID := seedFramework(t, db)
	examSetID := seedExamSet(t, db)
	questionID, correct, _ := seedChoiceQuestion(t, db, examSetID, skillID, 10)
	examID := seedExam(t, db, 7, examSetID, models.ExamInProgress, time.Now().UTC().Add(time.Hour))

	// Two coarse rungs: everything under 8 is level 1. The built-in ladder
	// would derive level 7 for a perfect score.
	scales := []models.LevelScale{
		{Level: 1, Name: "Entry", UpperBound: 8, Active: true},
		{Level: 2, Name: "Top", UpperBound: 0, Active: true},
	}
	if err := db.Create(&scales).Error; err != nil {
		t.Fatalf("seed custom scales: %v", err)
	}

	answerSvc := NewAnswerService(db, testLogger())
	if err := answerSvc.SaveAnswer(SaveAnswerInput{
		UserID: 7, ExamID: examID, QuestionID: questionID, SelectedOptionIDs: correct,
	}); err != nil {
		t.Fatalf("save answer: %v", err)
	}
	if err := NewSubmissionService(db, testLogger()).Submit(examID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var exam models.Exam
	if err := db.First(&exam, examID).Error; err != nil {
		t.Fatalf("load exam: %v", err)
	}
	if exam.CompetenceLevel != 1 {
		t.Errorf("expected custom ladder level 1, got %d", exam.CompetenceLevel)
	}
	if exam.LevelScaleID == nil || *exam.LevelScaleID != scales[0].ID {
		t.Errorf("expected level-scale reference %d, got %v", scales[0].ID, exam.LevelScaleID)
	}
}

func TestSeedDefaultLevelScales(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewFrameworkRepository(db)

	if err := repo.SeedDefaultLevelScales(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var count int64
	db.Model(&models.LevelScale{}).Count(&count)
	if count != 7 {
		t.Fatalf("expected 7 default rows, got %d", count)
	}

	// A second run must not duplicate or clobber anything.
	if err := db.Model(&models.LevelScale{}).Where("level = ?", 3).
		Update("upper_bound", 4.5).Error; err != nil {
		t.Fatalf("tweak row: %v", err)
	}
	if err := repo.SeedDefaultLevelScales(); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	db.Model(&models.LevelScale{}).Count(&count)
	if count != 7 {
		t.Fatalf("reseed duplicated rows: %d", count)
	}
	var tweaked models.LevelScale
	if err := db.Where("level = ?", 3).First(&tweaked).Error; err != nil {
		t.Fatalf("load tweaked row: %v", err)
	}
	if tweaked.UpperBound != 4.5 {
		t.Errorf("reseed clobbered operator change, upper bound %f", tweaked.UpperBound)
	}
}

func TestSubmitTwiceRejectedByStateGuard(t *testing.T) {
	db := newTestDB(t)
	_, _, skillID := seedFramework(t, db)
	examSetID := seedExamSet(t, db)
	questionID, correct, _ := seedChoiceQuestion(t, db, examSetID, skillID, 10)
	examID := seedExam(t, db, 7, examSetID, models.ExamInProgress, time.Now().UTC().Add(time.Hour))

	answerSvc := NewAnswerService(db, testLogger())
	if err := answerSvc.SaveAnswer(SaveAnswerInput{
		UserID: 7, ExamID: examID, QuestionID: questionID, SelectedOptionIDs: correct,
	}); err != nil {
		t.Fatalf("save answer: %v", err)
	}

	svc := NewSubmissionService(db, testLogger())
	if err := svc.Submit(examID); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	err := svc.Submit(examID)
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict on second submit, got %v", err)
	}

	// The rejected retry must not have touched the snapshots.
	var pillarCount, aspectCount int64
	db.Model(&models.ExamPillarSnapshot{}).Where("exam_id = ?", examID).Count(&pillarCount)
	db.Model(&models.ExamAspectSnapshot{}).Where("exam_id = ?", examID).Count(&aspectCount)
	if pillarCount != 1 || aspectCount != 1 {
		t.Fatalf("snapshots duplicated: %d pillar, %d aspect rows", pillarCount, aspectCount)
	}
}

func TestSubmitMissingExam(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db, testLogger())
	if err := svc.Submit(12345); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSnapshotUpsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	first := &models.ExamPillarSnapshot{ExamID: 1, PillarID: 2, RawScore: 3, WeightedScore: 3}
	if err := repo.UpsertPillar(first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second := &models.ExamPillarSnapshot{ExamID: 1, PillarID: 2, RawScore: 5, WeightedScore: 5}
	if err := repo.UpsertPillar(second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var rows []models.ExamPillarSnapshot
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row after upsert, got %d", len(rows))
	}
	if rows[0].RawScore != 5 {
		t.Errorf("expected overwritten raw score 5, got %f", rows[0].RawScore)
	}
}

func TestAutoSubmitScheduler(t *testing.T) {
	db := newTestDB(t)
	_, _, skillID := seedFramework(t, db)
	examSetID := seedExamSet(t, db)
	questionID, correct, _ := seedChoiceQuestion(t, db, examSetID, skillID, 10)

	now := time.Now().UTC()
	expiredID := seedExam(t, db, 7, examSetID, models.ExamInProgress, now.Add(-time.Minute))
	runningID := seedExam(t, db, 8, examSetID, models.ExamInProgress, now.Add(time.Hour))

	answerSvc := NewAnswerService(db, testLogger())
	if err := answerSvc.SaveAnswer(SaveAnswerInput{
		UserID: 7, ExamID: expiredID, QuestionID: questionID, SelectedOptionIDs: correct,
	}); err != nil {
		t.Fatalf("save answer: %v", err)
	}

	scheduler := NewScheduler(testLogger(), repository.NewExamRepository(db), NewSubmissionService(db, testLogger()))
	scheduler.RunAutoSubmit()

	var expired, running models.Exam
	db.First(&expired, expiredID)
	db.First(&running, runningID)
	if expired.Status != models.ExamSubmitted {
		t.Errorf("expired exam not auto-submitted, status %s", expired.Status)
	}
	if running.Status != models.ExamInProgress {
		t.Errorf("running exam must stay in progress, status %s", running.Status)
	}
}
