package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tutoria-backend/models/catalog"
	"tutoria-backend/models/tutoring"
	"tutoria-backend/models/users"
)

var validate = validator.New()

// BookingService owns the request/session lifecycle: submission, tutor
// resolution, completion, cancellation and rating. Every multi-row mutation
// runs inside a single transaction so a Request and its Session can never
// diverge.
type BookingService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewBookingService(db *gorm.DB, logger *zap.Logger) *BookingService {
	return &BookingService{db: db, logger: logger}
}

type SubmitRequestInput struct {
	StudentID         uint      `json:"studentId" validate:"required"`
	TutorID           uint      `json:"tutorId" validate:"required"`
	SubjectID         uint      `json:"subjectId" validate:"required"`
	StudentName       string    `json:"studentName" validate:"required"`
	StudentNationalID string    `json:"studentNationalId" validate:"required"`
	StartAt           time.Time `json:"startAt" validate:"required"`
	EndAt             time.Time `json:"endAt" validate:"required"`
	Modality          string    `json:"modality" validate:"required,oneof=IN_PERSON REMOTE"`
	Location          string    `json:"location" validate:"required_if=Modality IN_PERSON"`
	Comment           string    `json:"comment"`
}

type SubmitRequestResult struct {
	RequestID uint   `json:"requestId"`
	SessionID uint   `json:"sessionId"`
	Reference string `json:"reference"`
}

// SubmitRequest validates the proposal and creates the PENDING Session plus
// its Request atomically. On any failure nothing persists. Overlapping
// requests against the same tutor are allowed; the tutor arbitrates manually.
func (s *BookingService) SubmitRequest(in SubmitRequestInput) (*SubmitRequestResult, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !in.StartAt.Before(in.EndAt) {
		return nil, fmt.Errorf("%w: startAt must be before endAt", ErrValidation)
	}

	if err := s.requireRole(in.StudentID, users.RoleStudent, ErrStudentNotFound); err != nil {
		return nil, err
	}
	if err := s.requireRole(in.TutorID, users.RoleTutor, ErrTutorNotFound); err != nil {
		return nil, err
	}
	var subject catalog.Subject
	if err := s.db.First(&subject, in.SubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	// Snapshot the tutor's rate for this subject when assigned.
	var cost float64
	var assignment catalog.TutorSubject
	if err := s.db.Where("tutor_id = ? AND subject_id = ?", in.TutorID, in.SubjectID).
		First(&assignment).Error; err == nil {
		cost = assignment.HourlyRate
	}

	session := tutoring.Session{
		StudentID:      in.StudentID,
		TutorID:        in.TutorID,
		SubjectID:      in.SubjectID,
		StartAt:        in.StartAt,
		EndAt:          in.EndAt,
		Modality:       in.Modality,
		Location:       in.Location,
		Status:         tutoring.StatusPending,
		StudentComment: in.Comment,
		Cost:           cost,
	}
	request := tutoring.Request{
		StudentID:         in.StudentID,
		TutorID:           in.TutorID,
		SubjectID:         in.SubjectID,
		Reference:         uuid.NewString(),
		StudentName:       in.StudentName,
		StudentNationalID: in.StudentNationalID,
		Comment:           in.Comment,
		Status:            tutoring.StatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		request.SessionID = session.ID
		if err := tx.Create(&request).Error; err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("submit request failed",
			zap.Uint("studentId", in.StudentID),
			zap.Uint("tutorId", in.TutorID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("tutoring request submitted",
		zap.Uint("requestId", request.ID),
		zap.Uint("sessionId", session.ID),
		zap.String("reference", request.Reference))

	return &SubmitRequestResult{
		RequestID: request.ID,
		SessionID: session.ID,
		Reference: request.Reference,
	}, nil
}

// ResolveRequest is the canonical tutor decision path: it moves the Request
// to ACCEPTED or REJECTED, mirrors the status onto the linked Session and
// notifies the student, all in one transaction. Re-resolving an already
// resolved request overwrites the status and emits another notification.
func (s *BookingService) ResolveRequest(requestID uint, decision string, tutorID uint) (*tutoring.Request, error) {
	return s.updateRequestStatus(requestID, decision, tutorID, true)
}

// UpdateRequestStatus is the direct update path: the same dual status write
// without the notification.
func (s *BookingService) UpdateRequestStatus(requestID uint, decision string, tutorID uint) (*tutoring.Request, error) {
	return s.updateRequestStatus(requestID, decision, tutorID, false)
}

func (s *BookingService) updateRequestStatus(requestID uint, decision string, tutorID uint, notify bool) (*tutoring.Request, error) {
	if decision != tutoring.StatusAccepted && decision != tutoring.StatusRejected {
		return nil, ErrInvalidDecision
	}

	var request tutoring.Request
	query := s.db.Where("id = ?", requestID)
	if tutorID != 0 {
		query = query.Where("tutor_id = ?", tutorID)
	}
	if err := query.First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tutoring.Request{}).
			Where("id = ?", request.ID).
			Update("status", decision).Error; err != nil {
			return fmt.Errorf("update request: %w", err)
		}
		if err := tx.Model(&tutoring.Session{}).
			Where("id = ?", request.SessionID).
			Update("status", decision).Error; err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		if notify {
			message := "Your tutoring request has been REJECTED."
			if decision == tutoring.StatusAccepted {
				message = "Your tutoring request has been ACCEPTED."
			}
			notification := tutoring.Notification{
				StudentID: request.StudentID,
				Message:   fmt.Sprintf("%s (reference %s)", message, request.Reference),
				Kind:      tutoring.NotificationKindRequest,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return fmt.Errorf("create notification: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("resolve request failed",
			zap.Uint("requestId", requestID),
			zap.String("decision", decision),
			zap.Error(err))
		return nil, err
	}

	request.Status = decision
	s.logger.Info("request resolved",
		zap.Uint("requestId", request.ID),
		zap.String("decision", decision),
		zap.Bool("notified", notify))
	return &request, nil
}

// MarkCompleted sets the session status to COMPLETED. There is no guard on
// the current status; restricting completion to the session's own day is a
// UI policy, not enforced here.
func (s *BookingService) MarkCompleted(sessionID, tutorID uint) (*tutoring.Session, error) {
	query := s.db.Model(&tutoring.Session{}).Where("id = ?", sessionID)
	if tutorID != 0 {
		query = query.Where("tutor_id = ?", tutorID)
	}
	res := query.Update("status", tutoring.StatusCompleted)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrSessionNotFound
	}

	var session tutoring.Session
	if err := s.db.First(&session, sessionID).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// CancelSession lets a student withdraw a session that has not happened yet.
// Session and Request move to CANCELLED together.
func (s *BookingService) CancelSession(sessionID, studentID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&tutoring.Session{}).
			Where("id = ? AND student_id = ? AND status IN ?",
				sessionID, studentID,
				[]string{tutoring.StatusPending, tutoring.StatusAccepted}).
			Update("status", tutoring.StatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Distinguish a session the student does not have from one in
			// a state that cannot be cancelled.
			var n int64
			if err := tx.Model(&tutoring.Session{}).
				Where("id = ? AND student_id = ?", sessionID, studentID).
				Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return ErrSessionNotFound
			}
			return ErrCannotCancel
		}
		return tx.Model(&tutoring.Request{}).
			Where("session_id = ?", sessionID).
			Update("status", tutoring.StatusCancelled).Error
	})
	if err != nil && !errors.Is(err, ErrCannotCancel) && !errors.Is(err, ErrSessionNotFound) {
		s.logger.Error("cancel session failed", zap.Uint("sessionId", sessionID), zap.Error(err))
	}
	return err
}

// RateSession records the student's one-time rating of a completed session.
// The precondition check and the write are one conditional UPDATE, so two
// concurrent calls cannot both succeed.
func (s *BookingService) RateSession(sessionID, studentID uint, rating int, comment string) error {
	if rating < 1 || rating > 10 {
		return fmt.Errorf("%w: rating must be between 1 and 10", ErrValidation)
	}

	values := map[string]interface{}{"rating": rating}
	if comment != "" {
		values["student_comment"] = comment
	}

	res := s.db.Model(&tutoring.Session{}).
		Where("id = ? AND student_id = ? AND status = ? AND rating IS NULL",
			sessionID, studentID, tutoring.StatusCompleted).
		Updates(values)
	if res.Error != nil {
		s.logger.Error("rate session failed", zap.Uint("sessionId", sessionID), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCannotRate
	}
	return nil
}

func (s *BookingService) requireRole(userID uint, role string, notFound error) error {
	var user users.User
	if err := s.db.Where("id = ? AND role = ?", userID, role).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return err
	}
	return nil
}
