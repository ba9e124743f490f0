package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/st-united/AICP-API-sub001/internal/apperr"
	"github.com/st-united/AICP-API-sub001/internal/models"
	"github.com/st-united/AICP-API-sub001/internal/repository"
	"github.com/st-united/AICP-API-sub001/internal/scoring"
)

// SubmissionService runs the scoring pipeline when an exam is submitted,
// either explicitly by the user or by the auto-submit scheduler.
type SubmissionService struct {
	db        *gorm.DB
	log       *zap.Logger
	exams     *repository.ExamRepository
	snapshots *repository.SnapshotRepository
	framework *repository.FrameworkRepository
}

func NewSubmissionService(db *gorm.DB, log *zap.Logger) *SubmissionService {
	return &SubmissionService{
		db:        db,
		log:       log,
		exams:     repository.NewExamRepository(db),
		snapshots: repository.NewSnapshotRepository(db),
		framework: repository.NewFrameworkRepository(db),
	}
}

// Submit promotes the exam to SUBMITTED, grades every submitted answer,
// writes the pillar/aspect snapshots and the overall result. The whole
// pipeline runs in one transaction; the initial conditional status update
// makes concurrent submissions (user action vs scheduler) mutually
// exclusive.
func (s *SubmissionService) Submit(examID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		exams := s.exams.WithTx(tx)
		answers := repository.NewAnswerRepository(tx)
		snapshots := s.snapshots.WithTx(tx)
		framework := s.framework.WithTx(tx)

		if _, err := exams.FindByID(examID); err != nil {
			return err
		}

		claimed, err := exams.ClaimForSubmission(examID)
		if err != nil {
			return apperr.Wrap(err, "could not submit exam")
		}
		if !claimed {
			return apperr.New(apperr.Conflict, "exam already submitted")
		}

		if err := answers.PromoteDrafts(examID); err != nil {
			return apperr.Wrap(err, "could not promote draft answers")
		}

		submitted, err := answers.FindSubmitted(examID)
		if err != nil {
			return apperr.Wrap(err, "could not load submitted answers")
		}
		aspectWeights, err := framework.AspectWeights()
		if err != nil {
			return apperr.Wrap(err, "could not load aspect weights")
		}
		pillarWeights, err := framework.PillarWeights()
		if err != nil {
			return apperr.Wrap(err, "could not load pillar weights")
		}

		results := make([]scoring.AnswerResult, 0, len(submitted))
		for _, answer := range submitted {
			options := make([]scoring.Option, 0, len(answer.Question.Options))
			for _, opt := range answer.Question.Options {
				options = append(options, scoring.Option{ID: opt.ID, IsCorrect: opt.IsCorrect})
			}
			selected := make([]uint, 0, len(answer.Selections))
			for _, sel := range answer.Selections {
				selected = append(selected, sel.AnswerOptionID)
			}

			counts := scoring.Classify(options, selected)
			score := scoring.Score(counts, answer.Question.MaxPossibleScore)

			if err := answers.UpdateScore(answer.ID, score.FinalScore); err != nil {
				return apperr.Wrap(err, "could not persist answer score")
			}

			results = append(results, scoring.AnswerResult{
				AnswerID:   answer.ID,
				QuestionID: answer.QuestionID,
				AspectID:   answer.Question.Skill.AspectID,
				Counts:     counts,
				Score:      score,
				MaxScore:   answer.Question.MaxPossibleScore,
			})
		}

		agg := scoring.Aggregate(results, aspectWeights, pillarWeights)
		if agg.Excluded > 0 {
			s.log.Warn("Answers excluded from pillar aggregation (aspect has no pillar mapping)",
				zap.Uint("examID", examID),
				zap.Int("excluded", agg.Excluded))
		}

		for _, a := range agg.Aspects {
			err := snapshots.UpsertAspect(&models.ExamAspectSnapshot{
				ExamID:        examID,
				AspectID:      a.AspectID,
				PillarID:      a.PillarID,
				RawScore:      a.Raw,
				WeightedScore: a.Weighted,
				RawScoreSum:   a.RawScoreSum,
				MaxScoreSum:   a.MaxScoreSum,
			})
			if err != nil {
				return apperr.Wrap(err, "could not write aspect snapshot")
			}
		}
		for _, p := range agg.Pillars {
			err := snapshots.UpsertPillar(&models.ExamPillarSnapshot{
				ExamID:        examID,
				PillarID:      p.PillarID,
				RawScore:      p.RawScore,
				WeightedScore: p.WeightedScore,
			})
			if err != nil {
				return apperr.Wrap(err, "could not write pillar snapshot")
			}
		}

		ladder, err := framework.ActiveLadder()
		if err != nil {
			return apperr.Wrap(err, "could not load level scale")
		}
		level := scoring.DeriveLevel(agg.OverallScore, ladder)

		var levelScaleID *uint
		if scale, err := framework.FindLevelScale(level); err != nil {
			return apperr.Wrap(err, "could not resolve level scale")
		} else if scale != nil {
			levelScaleID = &scale.ID
		}

		if err := exams.SaveResult(examID, agg.OverallScore, level, levelScaleID); err != nil {
			return apperr.Wrap(err, "could not save exam result")
		}

		s.log.Info("Exam submitted",
			zap.Uint("examID", examID),
			zap.Float64("overallScore", agg.OverallScore),
			zap.Int("level", level),
			zap.Int("answers", len(results)))
		return nil
	})
}

// ExamResult is the read model for the result screen.
type ExamResult struct {
	Exam    *models.Exam
	Pillars []models.ExamPillarSnapshot
	Aspects []models.ExamAspectSnapshot
}

// Result loads a scored exam with its snapshots for the owning user.
func (s *SubmissionService) Result(examID, userID uint) (*ExamResult, error) {
	exam, err := s.exams.FindOwned(examID, userID)
	if err != nil {
		return nil, err
	}
	if exam.Status == models.ExamInProgress {
		return nil, apperr.New(apperr.Conflict, "exam has not been submitted yet")
	}
	pillars, aspects, err := s.snapshots.FindByExam(examID)
	if err != nil {
		return nil, apperr.Wrap(err, "could not load snapshots")
	}
	return &ExamResult{Exam: exam, Pillars: pillars, Aspects: aspects}, nil
}
