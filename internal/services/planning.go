package services

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/st-united/AICP-API-sub001/internal/apperr"
	"github.com/st-united/AICP-API-sub001/internal/models"
	"github.com/st-united/AICP-API-sub001/internal/repository"
	"github.com/st-united/AICP-API-sub001/internal/scheduling"
)

// PlanningService turns mentor availability windows into bookable spots.
type PlanningService struct {
	db    *gorm.DB
	log   *zap.Logger
	spots *repository.SpotRepository
}

func NewPlanningService(db *gorm.DB, log *zap.Logger) *PlanningService {
	return &PlanningService{
		db:    db,
		log:   log,
		spots: repository.NewSpotRepository(db),
	}
}

// WindowLabel is one availability window as submitted, "HH:mm" pairs.
type WindowLabel struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayPlan is one local date with its availability windows.
type DayPlan struct {
	Date    string        `json:"date"` // YYYY-MM-DD in the mentor's zone
	Windows []WindowLabel `json:"windows"`
}

type GenerateSpotsInput struct {
	MentorID        uint
	Timezone        string
	DurationMinutes int
	Days            []DayPlan
	ReplaceExisting bool
}

// GenerateSpots validates the whole plan first and only then writes: one
// schedule row plus every generated spot, atomically. With ReplaceExisting
// set, AVAILABLE spots in the affected range are cleared first so a mentor
// can re-plan idempotently; HELD and BOOKED spots survive.
func (s *PlanningService) GenerateSpots(in GenerateSpotsInput) ([]models.MentorTimeSpot, error) {
	if in.DurationMinutes <= 0 {
		return nil, apperr.New(apperr.Validation, "slot duration must be positive")
	}
	if len(in.Days) == 0 {
		return nil, apperr.New(apperr.Validation, "no days supplied")
	}

	// Validation pass: parse every label, check overlaps, convert to
	// absolute instants. Nothing is written until all days pass.
	var intervals []scheduling.Interval
	var rangeStart, rangeEnd time.Time
	for _, day := range in.Days {
		windows := make([]scheduling.Window, 0, len(day.Windows))
		for _, label := range day.Windows {
			start, err := scheduling.ParseTimeLabel(label.Start)
			if err != nil {
				return nil, err
			}
			end, err := scheduling.ParseTimeLabel(label.End)
			if err != nil {
				return nil, err
			}
			windows = append(windows, scheduling.Window{Start: start, End: end})
		}
		if err := scheduling.ValidateNonOverlap(day.Date, windows); err != nil {
			return nil, err
		}

		for _, w := range windows {
			for _, slot := range scheduling.SplitWindow(w.Start, w.End, in.DurationMinutes) {
				interval, err := scheduling.LocalToAbsolute(day.Date, slot.Start, slot.End, in.Timezone)
				if err != nil {
					return nil, err
				}
				intervals = append(intervals, interval)
				if rangeStart.IsZero() || interval.StartAt.Before(rangeStart) {
					rangeStart = interval.StartAt
				}
				if interval.EndAt.After(rangeEnd) {
					rangeEnd = interval.EndAt
				}
			}
		}
	}
	if len(intervals) == 0 {
		return nil, apperr.New(apperr.Validation, "no window is long enough for a single slot")
	}

	var created []models.MentorTimeSpot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		spots := s.spots.WithTx(tx)

		schedule := &models.MentorSchedule{
			MentorID: in.MentorID,
			Timezone: in.Timezone,
			Duration: in.DurationMinutes,
		}
		if err := spots.CreateSchedule(schedule); err != nil {
			return err
		}

		if in.ReplaceExisting {
			if err := spots.DeleteAvailableInRange(in.MentorID, rangeStart, rangeEnd); err != nil {
				return err
			}
		}

		created = make([]models.MentorTimeSpot, 0, len(intervals))
		for _, interval := range intervals {
			created = append(created, models.MentorTimeSpot{
				MentorID:   in.MentorID,
				ScheduleID: &schedule.ID,
				Status:     models.SpotAvailable,
				StartAt:    interval.StartAt,
				EndAt:      interval.EndAt,
				Timezone:   in.Timezone,
			})
		}
		return spots.CreateBatch(created)
	})
	if err != nil {
		return nil, apperr.Wrap(err, "could not generate time spots")
	}

	s.log.Info("Time spots generated",
		zap.Uint("mentorID", in.MentorID),
		zap.Int("spots", len(created)),
		zap.Bool("replaced", in.ReplaceExisting))
	return created, nil
}

// ListSpots returns a mentor's spots inside [from, to).
func (s *PlanningService) ListSpots(mentorID uint, from, to time.Time) ([]models.MentorTimeSpot, error) {
	return s.spots.ListForMentor(mentorID, from, to)
}
