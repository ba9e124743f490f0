package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/st-united/AICP-API-sub001/internal/apperr"
	"github.com/st-united/AICP-API-sub001/internal/models"
	"github.com/st-united/AICP-API-sub001/internal/repository"
)

// BookingService drives the spot lifecycle:
//
//	AVAILABLE --hold--> HELD --confirm--> BOOKED --cancel--> AVAILABLE
//
// The AVAILABLE→HELD transition is a conditional update and the sole
// serialization point between concurrent bookers; everything else runs in
// the same transaction, so a failed booking never leaves a spot in HELD.
type BookingService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewBookingService(db *gorm.DB, log *zap.Logger) *BookingService {
	return &BookingService{db: db, log: log}
}

// BookingConfirmation is returned to the caller on success.
type BookingConfirmation struct {
	RequestCode string    `json:"requestCode"`
	BookingCode string    `json:"bookingCode"`
	SpotID      uint      `json:"spotId"`
	ExamID      uint      `json:"examId"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
}

// Book reserves the spot for the exam's owner. Conflicts are reported
// distinctly: spot taken, past spot, interview already scheduled, and
// duplicate request each carry their own message so the caller can decide
// whether to retry.
func (s *BookingService) Book(spotID, userID, examID uint, note string) (*BookingConfirmation, error) {
	var confirmation *BookingConfirmation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		spots := repository.NewSpotRepository(tx)
		exams := repository.NewExamRepository(tx)
		bookings := repository.NewBookingRepository(tx)

		spot, err := spots.FindByID(spotID)
		if err != nil {
			return err
		}
		if spot.Status != models.SpotAvailable {
			return apperr.New(apperr.Conflict, "time spot is not available")
		}
		if !spot.StartAt.After(time.Now().UTC()) {
			return apperr.New(apperr.Validation, "time spot is already in the past")
		}

		exam, err := exams.FindOwned(examID, userID)
		if err != nil {
			return err
		}
		if exam.Status == models.ExamInterviewScheduled {
			return apperr.New(apperr.Conflict, "an interview is already scheduled for this exam")
		}
		if existing, err := bookings.FindRequestByExam(examID); err != nil {
			return err
		} else if existing != nil {
			return apperr.New(apperr.Conflict, "an interview request already exists for this exam")
		}

		// The linchpin: compare-and-swap AVAILABLE→HELD. Losing the race
		// to a concurrent booker shows up as zero rows affected.
		held, err := spots.Hold(spotID)
		if err != nil {
			return err
		}
		if !held {
			return apperr.New(apperr.Conflict, "time spot was just taken, pick another one")
		}

		request := &models.InterviewRequest{
			Code:   uuid.NewString(),
			ExamID: examID,
			SpotID: spotID,
		}
		if err := bookings.CreateRequest(request); err != nil {
			return err
		}

		metadata, _ := json.Marshal(map[string]string{"note": note})
		booking := &models.MentorBooking{
			Code:     uuid.NewString(),
			SpotID:   spotID,
			MentorID: spot.MentorID,
			UserID:   userID,
			ExamID:   examID,
			Metadata: datatypes.JSON(metadata),
		}
		if err := bookings.CreateBooking(booking); err != nil {
			return err
		}

		if err := exams.SetStatus(examID, models.ExamInterviewScheduled); err != nil {
			return err
		}
		if err := spots.SetStatus(spotID, models.SpotBooked); err != nil {
			return err
		}

		confirmation = &BookingConfirmation{
			RequestCode: request.Code,
			BookingCode: booking.Code,
			SpotID:      spotID,
			ExamID:      examID,
			StartAt:     spot.StartAt,
			EndAt:       spot.EndAt,
		}
		return nil
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.Internal {
			return nil, apperr.Wrap(err, "could not book time spot")
		}
		return nil, err
	}

	s.log.Info("Time spot booked",
		zap.Uint("spotID", spotID),
		zap.Uint("examID", examID),
		zap.Uint("userID", userID))
	return confirmation, nil
}

// Cancel releases a HELD or BOOKED spot back to AVAILABLE, removes the
// interview request and booking rows, and reverts the exam to SUBMITTED —
// cancellation always returns the exam to "awaiting interview scheduling",
// never to IN_PROGRESS.
func (s *BookingService) Cancel(spotID, examID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		spots := repository.NewSpotRepository(tx)
		exams := repository.NewExamRepository(tx)
		bookings := repository.NewBookingRepository(tx)

		spot, err := spots.FindByID(spotID)
		if err != nil {
			return err
		}
		if spot.Status != models.SpotBooked && spot.Status != models.SpotHeld {
			return apperr.New(apperr.Conflict, "time spot is not booked")
		}
		if spot.StartAt.Before(time.Now().UTC()) {
			return apperr.New(apperr.Validation, "cannot cancel a booking that already started")
		}

		request, err := bookings.FindRequestBySpotAndExam(spotID, examID)
		if err != nil {
			return err
		}
		if request == nil {
			return apperr.Newf(apperr.NotFound, "no booking links exam %d to this time spot", examID)
		}

		if err := bookings.DeletePair(spotID, examID); err != nil {
			return err
		}
		if err := spots.SetStatus(spotID, models.SpotAvailable); err != nil {
			return err
		}
		return exams.SetStatus(examID, models.ExamSubmitted)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.Internal {
			return apperr.Wrap(err, "could not cancel booking")
		}
		return err
	}

	s.log.Info("Booking cancelled",
		zap.Uint("spotID", spotID),
		zap.Uint("examID", examID))
	return nil
}
