package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkslearn/console/internal/domain"
)

type workshopFixture struct {
	students  *memStudentStore
	workshops *memWorkshopStore
	audit     *memAuditRepo
	svc       *WorkshopService
}

func newWorkshopFixture() *workshopFixture {
	f := &workshopFixture{
		students: newMemStudentStore(
			domain.Student{ID: "uid-1", Name: "Asha", Email: "a@x.io", CollegeID: "c-1", TotalPoints: 10},
			domain.Student{ID: "uid-2", Name: "Bala", Email: "b@x.io", CollegeID: "c-2"},
		),
		workshops: newMemWorkshopStore(),
		audit:     &memAuditRepo{},
	}
	colleges := newMemCollegeStore(
		domain.College{ID: "c-1", Name: "ABC Institute"},
		domain.College{ID: "c-2", Name: "XYZ College"},
	)
	auditLog := NewAuditLog(f.audit)
	students := NewStudentService(f.students, colleges, NewRegistrationService(newFakeProvider(), f.students, auditLog), auditLog)
	f.svc = NewWorkshopService(f.workshops, colleges, f.students, students, auditLog)

	return f
}

func (f *workshopFixture) pendingSubmission(t *testing.T) domain.Submission {
	t.Helper()

	w, err := f.svc.CreateWorkshop(context.Background(), domain.Workshop{Title: "Intro to Go", CollegeID: "c-1", MaxPoints: 50})
	require.NoError(t, err)
	sub, err := f.svc.Submit(context.Background(), w.ID, "uid-1", "https://github.com/asha/go-intro")
	require.NoError(t, err)

	return sub
}

func TestWorkshopService_CreateWorkshop(t *testing.T) {
	f := newWorkshopFixture()

	w, err := f.svc.CreateWorkshop(context.Background(), domain.Workshop{Title: "  Intro to Go ", CollegeID: "c-1", MaxPoints: 50})
	require.NoError(t, err)
	assert.Equal(t, "Intro to Go", w.Title)
	assert.Equal(t, domain.WorkshopUpcoming, w.Status)
	assert.Contains(t, w.ID, workshopKeyPrefix)
	assert.Equal(t, []string{domain.ActionWorkshopCreated + "/SUCCESS"}, f.audit.actions())

	_, err = f.svc.CreateWorkshop(context.Background(), domain.Workshop{Title: "", CollegeID: "c-1", MaxPoints: 5})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = f.svc.CreateWorkshop(context.Background(), domain.Workshop{Title: "X", CollegeID: "c-1"})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = f.svc.CreateWorkshop(context.Background(), domain.Workshop{Title: "X", CollegeID: "c-1", MaxPoints: 5, Status: "Done"})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = f.svc.CreateWorkshop(context.Background(), domain.Workshop{Title: "X", CollegeID: "c-404", MaxPoints: 5})
	assert.ErrorIs(t, err, ErrCollegeNotFound)

	list, err := f.svc.ListWorkshops(context.Background(), "c-2")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWorkshopService_Submit(t *testing.T) {
	f := newWorkshopFixture()
	sub := f.pendingSubmission(t)

	assert.Equal(t, domain.SubmissionPending, sub.Status)
	assert.Equal(t, "uid-1", sub.StudentID)

	_, err := f.svc.Submit(context.Background(), sub.WorkshopID, "uid-2", "x")
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = f.svc.Submit(context.Background(), sub.WorkshopID, "uid-404", "x")
	assert.ErrorIs(t, err, ErrStudentNotFound)
	_, err = f.svc.Submit(context.Background(), "w-404", "uid-1", "x")
	assert.ErrorIs(t, err, ErrWorkshopNotFound)

	pending, err := f.svc.ListSubmissions(context.Background(), sub.WorkshopID, domain.SubmissionPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, sub.ID, pending[0].ID)
}

func TestWorkshopService_GradeSubmission_ApproveAwardsPoints(t *testing.T) {
	f := newWorkshopFixture()
	sub := f.pendingSubmission(t)

	graded, err := f.svc.GradeSubmission(context.Background(), sub.ID, domain.Grade{Approve: true, Score: 40, Feedback: "solid"})
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionApproved, graded.Status)
	assert.Equal(t, 40, graded.Score)
	require.NotNil(t, graded.GradedAt)

	student, err := f.students.FindByID(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 50, student.TotalPoints)
	assert.Equal(t, 1, student.TasksCompleted)

	require.Len(t, f.audit.byAction(domain.ActionPointsAwarded), 1)
	gradedEntries := f.audit.byAction(domain.ActionSubmissionGraded)
	require.Len(t, gradedEntries, 1)
	assert.Equal(t, domain.AuditSuccess, gradedEntries[0].Status)
	assert.Equal(t, "40", gradedEntries[0].Details["score"])

	_, err = f.svc.GradeSubmission(context.Background(), sub.ID, domain.Grade{Approve: true, Score: 10})
	assert.ErrorIs(t, err, ErrSubmissionGraded)

	student, err = f.students.FindByID(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 50, student.TotalPoints)
}

func TestWorkshopService_GradeSubmission_RejectAwardsNothing(t *testing.T) {
	f := newWorkshopFixture()
	sub := f.pendingSubmission(t)

	graded, err := f.svc.GradeSubmission(context.Background(), sub.ID, domain.Grade{Score: 45, Feedback: "missing tests"})
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionRejected, graded.Status)
	assert.Zero(t, graded.Score)
	assert.Equal(t, "missing tests", graded.Feedback)

	student, err := f.students.FindByID(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 10, student.TotalPoints)
	assert.Zero(t, student.TasksCompleted)
	assert.Empty(t, f.audit.byAction(domain.ActionPointsAwarded))
}

func TestWorkshopService_GradeSubmission_Errors(t *testing.T) {
	f := newWorkshopFixture()
	sub := f.pendingSubmission(t)

	_, err := f.svc.GradeSubmission(context.Background(), sub.ID, domain.Grade{Approve: true, Score: 51})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = f.svc.GradeSubmission(context.Background(), sub.ID, domain.Grade{Approve: true, Score: -1})
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = f.svc.GradeSubmission(context.Background(), "s-404", domain.Grade{Approve: true})
	assert.ErrorIs(t, err, ErrSubmissionNotFound)

	still, err := f.workshops.FindSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionPending, still.Status)
}

type failingAwarder struct{}

func (failingAwarder) AwardPoints(context.Context, string, int, bool) (domain.Student, error) {
	return domain.Student{}, errors.New("store unavailable")
}

func TestWorkshopService_GradeSubmission_ReopensWhenAwardFails(t *testing.T) {
	f := newWorkshopFixture()
	sub := f.pendingSubmission(t)
	f.svc.points = failingAwarder{}

	_, err := f.svc.GradeSubmission(context.Background(), sub.ID, domain.Grade{Approve: true, Score: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store unavailable")

	reopened, err := f.workshops.FindSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionPending, reopened.Status)
	assert.Nil(t, reopened.GradedAt)

	gradedEntries := f.audit.byAction(domain.ActionSubmissionGraded)
	require.Len(t, gradedEntries, 1)
	assert.Equal(t, domain.AuditFailure, gradedEntries[0].Status)
}
