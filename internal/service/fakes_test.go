package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/identity"
	"github.com/sparkslearn/console/internal/repository"
)

type fakeProvider struct {
	mu        sync.Mutex
	accounts  map[string]string
	nextUID   int
	createErr error
	deleteErr error
	opened    int
	signedOut int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{accounts: map[string]string{}}
}

func (p *fakeProvider) OpenSession(_ context.Context) (identity.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opened++

	return &fakeSession{provider: p}, nil
}

type fakeSession struct {
	provider *fakeProvider
	email    string
}

func (s *fakeSession) CreateAccount(_ context.Context, email, _ string) (string, error) {
	p := s.provider
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.createErr != nil {
		return "", p.createErr
	}
	if _, ok := p.accounts[email]; ok {
		return "", identity.ErrAccountExists
	}
	p.nextUID++
	uid := fmt.Sprintf("uid-%d", p.nextUID)
	p.accounts[email] = uid
	s.email = email

	return uid, nil
}

func (s *fakeSession) DeleteAccount(_ context.Context) error {
	p := s.provider
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.deleteErr != nil {
		return p.deleteErr
	}
	delete(p.accounts, s.email)
	s.email = ""

	return nil
}

func (s *fakeSession) SignOut(_ context.Context) error {
	p := s.provider
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signedOut++

	return nil
}

func (p *fakeProvider) accountCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.accounts)
}

// memStudentStore keeps students in memory and enforces unique emails like the Postgres index.
type memStudentStore struct {
	mu        sync.RWMutex
	students  map[string]domain.Student
	putErr    error
	deleteErr error
	findErr   error
}

func newMemStudentStore(students ...domain.Student) *memStudentStore {
	s := &memStudentStore{students: map[string]domain.Student{}}
	for _, st := range students {
		s.students[st.ID] = st
	}

	return s
}

func (s *memStudentStore) Put(_ context.Context, student domain.Student) (domain.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.putErr != nil {
		return domain.Student{}, s.putErr
	}
	for id, st := range s.students {
		if id != student.ID && st.Email == student.Email {
			return domain.Student{}, repository.ErrStudentEmailExists
		}
	}
	s.students[student.ID] = student

	return student, nil
}

func (s *memStudentStore) FindByID(_ context.Context, id string) (domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.findErr != nil {
		return domain.Student{}, s.findErr
	}
	st, ok := s.students[id]
	if !ok {
		return domain.Student{}, ErrStudentNotFound
	}

	return st, nil
}

func (s *memStudentStore) FindByEmail(_ context.Context, email string) ([]domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []domain.Student
	for _, st := range s.sorted() {
		if st.Email == email {
			out = append(out, st)
		}
	}

	return out, nil
}

func (s *memStudentStore) FindByCollege(_ context.Context, collegeID string) ([]domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Student
	for _, st := range s.sorted() {
		if st.CollegeID == collegeID {
			out = append(out, st)
		}
	}

	return out, nil
}

func (s *memStudentStore) FindAll(_ context.Context) ([]domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.findErr != nil {
		return nil, s.findErr
	}

	return s.sorted(), nil
}

func (s *memStudentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.students, id)

	return nil
}

func (s *memStudentStore) AddPoints(_ context.Context, id string, points, tasks int) (domain.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.students[id]
	if !ok {
		return domain.Student{}, ErrStudentNotFound
	}
	st.TotalPoints += points
	st.TasksCompleted += tasks
	s.students[id] = st

	return st, nil
}

func (s *memStudentStore) ResetSeason(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, st := range s.students {
		st.TotalPoints = 0
		st.Badges = []string{}
		s.students[id] = st
	}

	return len(s.students), nil
}

func (s *memStudentStore) CountByCollege(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{}
	for _, st := range s.students {
		counts[st.CollegeID]++
	}

	return counts, nil
}

func (s *memStudentStore) sorted() []domain.Student {
	out := make([]domain.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func (s *memStudentStore) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.students)
}

type memCollegeStore struct {
	mu       sync.RWMutex
	colleges map[string]domain.College
}

func newMemCollegeStore(colleges ...domain.College) *memCollegeStore {
	s := &memCollegeStore{colleges: map[string]domain.College{}}
	for _, c := range colleges {
		s.colleges[c.ID] = c
	}

	return s
}

func (s *memCollegeStore) Create(_ context.Context, college domain.College) (domain.College, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colleges[college.ID] = college

	return college, nil
}

func (s *memCollegeStore) FindByID(_ context.Context, id string) (domain.College, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.colleges[id]
	if !ok {
		return domain.College{}, ErrCollegeNotFound
	}

	return c, nil
}

func (s *memCollegeStore) FindAll(_ context.Context) ([]domain.College, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.College, 0, len(s.colleges))
	for _, c := range s.colleges {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func (s *memCollegeStore) UpdateStatus(_ context.Context, id string, status domain.CollegeStatus) (domain.College, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colleges[id]
	if !ok {
		return domain.College{}, ErrCollegeNotFound
	}
	c.Status = status
	s.colleges[id] = c

	return c, nil
}

type memAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *memAuditRepo) Append(_ context.Context, entry domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)

	return nil
}

func (r *memAuditRepo) Find(_ context.Context, action string, limit int) ([]domain.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.AuditEntry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if action == "" || r.entries[i].Action == action {
			out = append(out, r.entries[i])
		}
	}

	return out, nil
}

func (r *memAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action+"/"+string(e.Status))
	}

	return out
}

func (r *memAuditRepo) byAction(action string) []domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.AuditEntry
	for _, e := range r.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}

	return out
}

type memWorkshopStore struct {
	mu          sync.Mutex
	workshops   map[string]domain.Workshop
	submissions map[string]domain.Submission
}

func newMemWorkshopStore() *memWorkshopStore {
	return &memWorkshopStore{
		workshops:   map[string]domain.Workshop{},
		submissions: map[string]domain.Submission{},
	}
}

func (s *memWorkshopStore) CreateWorkshop(_ context.Context, w domain.Workshop) (domain.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workshops[w.ID] = w

	return w, nil
}

func (s *memWorkshopStore) FindWorkshop(_ context.Context, id string) (domain.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workshops[id]
	if !ok {
		return domain.Workshop{}, ErrWorkshopNotFound
	}

	return w, nil
}

func (s *memWorkshopStore) FindWorkshops(_ context.Context, collegeID string) ([]domain.Workshop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Workshop{}
	for _, w := range s.workshops {
		if collegeID == "" || w.CollegeID == collegeID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })

	return out, nil
}

func (s *memWorkshopStore) CreateSubmission(_ context.Context, sub domain.Submission) (domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[sub.ID] = sub

	return sub, nil
}

func (s *memWorkshopStore) FindSubmission(_ context.Context, id string) (domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return domain.Submission{}, ErrSubmissionNotFound
	}

	return sub, nil
}

func (s *memWorkshopStore) FindSubmissions(_ context.Context, workshopID string, status domain.SubmissionStatus) ([]domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Submission{}
	for _, sub := range s.submissions {
		if sub.WorkshopID == workshopID && (status == "" || sub.Status == status) {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (s *memWorkshopStore) GradeSubmission(_ context.Context, id string, status domain.SubmissionStatus, score int, feedback string, gradedAt time.Time) (domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return domain.Submission{}, ErrSubmissionNotFound
	}
	if sub.Status != domain.SubmissionPending {
		return domain.Submission{}, ErrSubmissionGraded
	}
	sub.Status, sub.Score, sub.Feedback, sub.GradedAt = status, score, feedback, &gradedAt
	s.submissions[id] = sub

	return sub, nil
}

func (s *memWorkshopStore) ReopenSubmission(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return ErrSubmissionNotFound
	}
	sub.Status, sub.Score, sub.Feedback, sub.GradedAt = domain.SubmissionPending, 0, "", nil
	s.submissions[id] = sub

	return nil
}
