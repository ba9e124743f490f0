package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/st-united/AICP-API-sub001/internal/config"
	"github.com/st-united/AICP-API-sub001/internal/repository"
)

// Scheduler auto-submits exams whose time ran out. One bad exam never
// aborts the batch: failures are logged and retried naturally on the next
// tick because the exam stays IN_PROGRESS.
type Scheduler struct {
	log        *zap.Logger
	exams      *repository.ExamRepository
	submission *SubmissionService
}

func NewScheduler(log *zap.Logger, exams *repository.ExamRepository, submission *SubmissionService) *Scheduler {
	return &Scheduler{
		log:        log,
		exams:      exams,
		submission: submission,
	}
}

func schedulerConf() config.SchedulerConfig {
	if config.Conf == nil {
		return config.SchedulerConfig{IntervalMinutes: 5, GraceSeconds: 10}
	}
	return config.Conf.Scheduler
}

// Start runs the scheduler in a goroutine.
func (s *Scheduler) Start() {
	interval := time.Duration(schedulerConf().IntervalMinutes) * time.Minute
	s.log.Info("Starting auto-submit scheduler...", zap.Duration("interval", interval))
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			<-ticker.C
			s.RunAutoSubmit()
		}
	}()
}

// RunAutoSubmit finds every expired IN_PROGRESS exam and submits it. The
// grace buffer keeps the server from racing client-side auto-submit over
// small clock skews.
func (s *Scheduler) RunAutoSubmit() {
	grace := time.Duration(schedulerConf().GraceSeconds) * time.Second
	cutoff := time.Now().UTC().Add(-grace)

	exams, err := s.exams.FindExpiredInProgress(cutoff)
	if err != nil {
		s.log.Error("Failed to query expired exams", zap.Error(err))
		return
	}
	if len(exams) == 0 {
		return
	}
	s.log.Debug("Auto-submitting expired exams", zap.Int("count", len(exams)))

	for _, exam := range exams {
		if err := s.submission.Submit(exam.ID); err != nil {
			s.log.Error("Auto-submit failed for exam",
				zap.Uint("examID", exam.ID),
				zap.Error(err))
			continue
		}
		s.log.Info("Exam auto-submitted", zap.Uint("examID", exam.ID))
	}
}
