package v1

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/service"
)

type fakeWorkshopService struct {
	created domain.Workshop
	grade   domain.Grade
}

func (f *fakeWorkshopService) CreateWorkshop(_ context.Context, w domain.Workshop) (domain.Workshop, error) {
	if w.CollegeID == "c-404" {
		return domain.Workshop{}, fmt.Errorf("colleges -> %w", service.ErrCollegeNotFound)
	}
	w.ID = "w-1"
	f.created = w
	return w, nil
}

func (f *fakeWorkshopService) ListWorkshops(context.Context, string) ([]domain.Workshop, error) {
	return []domain.Workshop{f.created}, nil
}

func (f *fakeWorkshopService) Submit(_ context.Context, workshopID, studentID, content string) (domain.Submission, error) {
	return domain.Submission{ID: "s-1", WorkshopID: workshopID, StudentID: studentID, Content: content, Status: domain.SubmissionPending}, nil
}

func (f *fakeWorkshopService) ListSubmissions(context.Context, string, domain.SubmissionStatus) ([]domain.Submission, error) {
	return nil, fmt.Errorf("repo -> %w", service.ErrWorkshopNotFound)
}

func (f *fakeWorkshopService) GradeSubmission(_ context.Context, id string, grade domain.Grade) (domain.Submission, error) {
	if id == "s-graded" {
		return domain.Submission{}, fmt.Errorf("%w: s-graded is Approved", service.ErrSubmissionGraded)
	}
	f.grade = grade
	status := domain.SubmissionRejected
	if grade.Approve {
		status = domain.SubmissionApproved
	}
	return domain.Submission{ID: id, Status: status, Score: grade.Score}, nil
}

func newWorkshopRouter(svc *fakeWorkshopService) *gin.Engine {
	h := NewWorkshopHandler(svc)
	r := gin.New()
	r.POST("/colleges/:collegeID/workshops", h.HandleCreateWorkshop)
	r.GET("/workshops", h.HandleListWorkshops)
	r.GET("/workshops/:workshopID/submissions", h.HandleListSubmissions)
	r.POST("/workshops/:workshopID/submissions", h.HandleSubmitWork)
	r.POST("/submissions/:submissionID/grade", h.HandleGradeSubmission)

	return r
}

func TestWorkshopHandler_CreateWorkshop(t *testing.T) {
	svc := &fakeWorkshopService{}
	r := newWorkshopRouter(svc)

	w := doJSON(r, http.MethodPost, "/colleges/c-1/workshops", `{"title":"Intro to Go","max_points":50,"start_date":"2026-11-01"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "c-1", svc.created.CollegeID)
	assert.Equal(t, 50, svc.created.MaxPoints)

	w = doJSON(r, http.MethodPost, "/colleges/c-1/workshops", `{"title":"Intro to Go"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeErr(t, w).Code)

	w = doJSON(r, http.MethodPost, "/colleges/c-404/workshops", `{"title":"Intro to Go","max_points":5}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkshopHandler_Submissions(t *testing.T) {
	r := newWorkshopRouter(&fakeWorkshopService{})

	w := doJSON(r, http.MethodPost, "/workshops/w-1/submissions", `{"student_id":"uid-1","content":"https://github.com/asha/go"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/workshops/w-1/submissions", `{"content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/workshops/w-404/submissions?status=Pending", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkshopHandler_GradeSubmission(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		body     string
		wantCode int
		wantErr  string
		approve  bool
	}{
		{name: "approve", id: "s-1", body: `{"decision":"approve","score":40}`, wantCode: http.StatusOK, approve: true},
		{name: "reject", id: "s-1", body: `{"decision":"reject","feedback":"missing tests"}`, wantCode: http.StatusOK},
		{name: "unknown decision", id: "s-1", body: `{"decision":"maybe"}`, wantCode: http.StatusBadRequest, wantErr: "VALIDATION_FAILED"},
		{name: "negative score", id: "s-1", body: `{"decision":"approve","score":-3}`, wantCode: http.StatusBadRequest, wantErr: "VALIDATION_FAILED"},
		{name: "already graded", id: "s-graded", body: `{"decision":"approve","score":1}`, wantCode: http.StatusConflict, wantErr: "SUBMISSION_GRADED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeWorkshopService{}
			w := doJSON(newWorkshopRouter(svc), http.MethodPost, "/submissions/"+tt.id+"/grade", tt.body)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, decodeErr(t, w).Code)
				return
			}
			assert.Equal(t, tt.approve, svc.grade.Approve)
		})
	}
}
