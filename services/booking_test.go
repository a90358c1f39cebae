package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tutoria-backend/models/catalog"
	"tutoria-backend/models/tutoring"
	"tutoria-backend/models/users"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&users.StudentProfile{},
		&users.TutorProfile{},
		&catalog.Subject{},
		&catalog.SubjectSemester{},
		&catalog.TutorSubject{},
		&tutoring.AvailabilityWindow{},
		&tutoring.Session{},
		&tutoring.Request{},
		&tutoring.Notification{},
	))
	return db
}

type fixture struct {
	svc     *BookingService
	db      *gorm.DB
	student users.User
	tutor   users.User
	subject catalog.Subject
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	f := &fixture{
		svc:     NewBookingService(db, zap.NewNop()),
		db:      db,
		student: users.User{FirstName: "Ana", LastName: "Mora", Email: "ana@uni.edu", Role: users.RoleStudent},
		tutor:   users.User{FirstName: "Luis", LastName: "Paz", Email: "luis@uni.edu", Role: users.RoleTutor},
		subject: catalog.Subject{Name: "Calculus I"},
	}
	require.NoError(t, db.Create(&f.student).Error)
	require.NoError(t, db.Create(&f.tutor).Error)
	require.NoError(t, db.Create(&f.subject).Error)
	return f
}

func (f *fixture) validInput() SubmitRequestInput {
	start := time.Date(2026, 9, 7, 8, 0, 0, 0, time.Local)
	return SubmitRequestInput{
		StudentID:         f.student.ID,
		TutorID:           f.tutor.ID,
		SubjectID:         f.subject.ID,
		StudentName:       "Ana Mora",
		StudentNationalID: "1712345678",
		StartAt:           start,
		EndAt:             start.Add(time.Hour),
		Modality:          tutoring.ModalityRemote,
		Comment:           "Limits and derivatives",
	}
}

func (f *fixture) counts(t *testing.T) (sessions, requests int64) {
	t.Helper()
	require.NoError(t, f.db.Model(&tutoring.Session{}).Count(&sessions).Error)
	require.NoError(t, f.db.Model(&tutoring.Request{}).Count(&requests).Error)
	return
}

func TestSubmitRequest_CreatesPendingPair(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotZero(t, res.RequestID)
	assert.NotZero(t, res.SessionID)
	assert.NotEmpty(t, res.Reference)

	var session tutoring.Session
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Equal(t, tutoring.StatusPending, session.Status)
	assert.Nil(t, session.Rating)

	var request tutoring.Request
	require.NoError(t, f.db.First(&request, res.RequestID).Error)
	assert.Equal(t, tutoring.StatusPending, request.Status)
	assert.Equal(t, session.ID, request.SessionID)

	sessions, requests := f.counts(t)
	assert.EqualValues(t, 1, sessions)
	assert.EqualValues(t, 1, requests)
}

func TestSubmitRequest_MissingStudentNameWritesNothing(t *testing.T) {
	f := newFixture(t)

	in := f.validInput()
	in.StudentName = ""

	_, err := f.svc.SubmitRequest(in)
	assert.ErrorIs(t, err, ErrValidation)

	sessions, requests := f.counts(t)
	assert.Zero(t, sessions)
	assert.Zero(t, requests)
}

func TestSubmitRequest_StartMustPrecedeEnd(t *testing.T) {
	f := newFixture(t)

	in := f.validInput()
	in.EndAt = in.StartAt

	_, err := f.svc.SubmitRequest(in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitRequest_InPersonRequiresLocation(t *testing.T) {
	f := newFixture(t)

	in := f.validInput()
	in.Modality = tutoring.ModalityInPerson
	_, err := f.svc.SubmitRequest(in)
	assert.ErrorIs(t, err, ErrValidation)

	in.Location = "Library, room 204"
	res, err := f.svc.SubmitRequest(in)
	require.NoError(t, err)

	var session tutoring.Session
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Equal(t, "Library, room 204", session.Location)
}

func TestSubmitRequest_UnknownTutor(t *testing.T) {
	f := newFixture(t)

	in := f.validInput()
	in.TutorID = 9999

	_, err := f.svc.SubmitRequest(in)
	assert.ErrorIs(t, err, ErrTutorNotFound)
}

func TestSubmitRequest_SnapshotsHourlyRate(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&catalog.TutorSubject{
		TutorID: f.tutor.ID, SubjectID: f.subject.ID, HourlyRate: 12.5,
	}).Error)

	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)

	var session tutoring.Session
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Equal(t, 12.5, session.Cost)
}

func TestResolveRequest_AcceptMirrorsAndNotifies(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)

	updated, err := f.svc.ResolveRequest(res.RequestID, tutoring.StatusAccepted, f.tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, tutoring.StatusAccepted, updated.Status)

	var session tutoring.Session
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Equal(t, tutoring.StatusAccepted, session.Status)

	var notifications []tutoring.Notification
	require.NoError(t, f.db.Where("student_id = ?", f.student.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "ACCEPTED")
	assert.Contains(t, notifications[0].Message, res.Reference)
}

func TestResolveRequest_Reject(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)

	updated, err := f.svc.ResolveRequest(res.RequestID, tutoring.StatusRejected, f.tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, tutoring.StatusRejected, updated.Status)

	var session tutoring.Session
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Equal(t, tutoring.StatusRejected, session.Status)

	var n int64
	require.NoError(t, f.db.Model(&tutoring.Notification{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestResolveRequest_BadDecision(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)

	_, err = f.svc.ResolveRequest(res.RequestID, "MAYBE", f.tutor.ID)
	assert.ErrorIs(t, err, ErrInvalidDecision)

	_, err = f.svc.ResolveRequest(res.RequestID, tutoring.StatusCancelled, f.tutor.ID)
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestResolveRequest_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ResolveRequest(42, tutoring.StatusAccepted, f.tutor.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestResolveRequest_WrongTutorScopedOut(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)

	other := users.User{FirstName: "Eva", LastName: "Ruiz", Email: "eva@uni.edu", Role: users.RoleTutor}
	require.NoError(t, f.db.Create(&other).Error)

	_, err = f.svc.ResolveRequest(res.RequestID, tutoring.StatusAccepted, other.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestUpdateRequestStatus_NoNotification(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)

	updated, err := f.svc.UpdateRequestStatus(res.RequestID, tutoring.StatusAccepted, f.tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, tutoring.StatusAccepted, updated.Status)

	var session tutoring.Session
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Equal(t, tutoring.StatusAccepted, session.Status)

	var n int64
	require.NoError(t, f.db.Model(&tutoring.Notification{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestResolveRequest_ReResolveDuplicatesNotification(t *testing.T) {
	// Resolution is not idempotent: re-resolving overwrites the status and
	// emits another notification.
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)

	_, err = f.svc.ResolveRequest(res.RequestID, tutoring.StatusAccepted, f.tutor.ID)
	require.NoError(t, err)
	updated, err := f.svc.ResolveRequest(res.RequestID, tutoring.StatusRejected, f.tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, tutoring.StatusRejected, updated.Status)

	var n int64
	require.NoError(t, f.db.Model(&tutoring.Notification{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestMarkCompleted(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)

	// No ACCEPTED-first guard: completing a PENDING session succeeds.
	session, err := f.svc.MarkCompleted(res.SessionID, f.tutor.ID)
	require.NoError(t, err)
	assert.Equal(t, tutoring.StatusCompleted, session.Status)

	_, err = f.svc.MarkCompleted(9999, f.tutor.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCancelSession(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.CancelSession(res.SessionID, f.student.ID))

	var session tutoring.Session
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Equal(t, tutoring.StatusCancelled, session.Status)

	var request tutoring.Request
	require.NoError(t, f.db.First(&request, res.RequestID).Error)
	assert.Equal(t, tutoring.StatusCancelled, request.Status)

	// Already cancelled, and completed sessions cannot be cancelled either.
	assert.ErrorIs(t, f.svc.CancelSession(res.SessionID, f.student.ID), ErrCannotCancel)
}

func TestCancelSession_MissingOrForeignIsNotFound(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.CancelSession(9999, f.student.ID), ErrSessionNotFound)

	// Another student's session looks like it does not exist.
	other := users.User{FirstName: "Eva", LastName: "Ruiz", Email: "eva@uni.edu", Role: users.RoleStudent}
	require.NoError(t, f.db.Create(&other).Error)
	assert.ErrorIs(t, f.svc.CancelSession(res.SessionID, other.ID), ErrSessionNotFound)

	var session tutoring.Session
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Equal(t, tutoring.StatusPending, session.Status)
}

func TestRateSession_RequiresCompleted(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)

	err = f.svc.RateSession(res.SessionID, f.student.ID, 8, "great")
	assert.ErrorIs(t, err, ErrCannotRate)

	var session tutoring.Session
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Nil(t, session.Rating)
}

func TestRateSession_OnceOnly(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)
	_, err = f.svc.MarkCompleted(res.SessionID, f.tutor.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.RateSession(res.SessionID, f.student.ID, 9, "very clear"))

	err = f.svc.RateSession(res.SessionID, f.student.ID, 2, "changed my mind")
	assert.ErrorIs(t, err, ErrCannotRate)

	var session tutoring.Session
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	require.NotNil(t, session.Rating)
	assert.Equal(t, 9, *session.Rating)
	assert.Equal(t, "very clear", session.StudentComment)
}

func TestRateSession_BoundsCheckedBeforeWrite(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)
	_, err = f.svc.MarkCompleted(res.SessionID, f.tutor.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.RateSession(res.SessionID, f.student.ID, 0, ""), ErrValidation)
	assert.ErrorIs(t, f.svc.RateSession(res.SessionID, f.student.ID, 11, ""), ErrValidation)

	var session tutoring.Session
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Nil(t, session.Rating)
}

func TestRateSession_WrongOwner(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.SubmitRequest(f.validInput())
	require.NoError(t, err)
	_, err = f.svc.MarkCompleted(res.SessionID, f.tutor.ID)
	require.NoError(t, err)

	err = f.svc.RateSession(res.SessionID, f.student.ID+100, 7, "")
	assert.ErrorIs(t, err, ErrCannotRate)
}
