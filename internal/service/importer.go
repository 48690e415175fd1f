package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sparkslearn/console/internal/domain"
	"github.com/sparkslearn/console/internal/metrics"
	"github.com/sparkslearn/console/internal/reconcile"
)

const importCancelledMessage = "import cancelled"

type Registrar interface {
	Register(ctx context.Context, student domain.Student) (RegistrationResult, error)
}

type CollegeFinder interface {
	FindByID(ctx context.Context, id string) (domain.College, error)
}

type RosterReader interface {
	FindAll(ctx context.Context) ([]domain.Student, error)
}

type ImportService struct {
	colleges CollegeFinder
	roster   RosterReader
	writer   Registrar
	audit    Auditor
	newID    func() string
}

func NewImportService(colleges CollegeFinder, roster RosterReader, writer Registrar, audit Auditor) *ImportService {
	return &ImportService{
		colleges: colleges,
		roster:   roster,
		writer:   writer,
		audit:    audit,
		newID:    newLocalKey,
	}
}

func newLocalKey() string {
	return domain.LocalKeyPrefix + uuid.NewString()
}

// Import reconciles text against the college and registers every accepted row, one at a time.
// Cancelling ctx stops the import between rows; the rows not attempted are reported as sync errors.
func (s *ImportService) Import(ctx context.Context, collegeID, text string) (domain.ImportReport, error) {
	college, batch, err := s.reconcile(ctx, collegeID, text)
	if err != nil {
		return domain.ImportReport{}, err
	}

	report := domain.ImportReport{
		CollegeID:  college.ID,
		Accepted:   len(batch.Accepted),
		Skipped:    batch.Skipped,
		Rejected:   batch.Rejected,
		SyncErrors: []domain.RowError{},
	}
	metrics.ImportRows.WithLabelValues("rejected").Add(float64(len(batch.Rejected)))
	metrics.ImportRows.WithLabelValues("skipped").Add(float64(batch.Skipped))

	for i, student := range batch.Accepted {
		if ctx.Err() != nil {
			for _, rest := range batch.Accepted[i:] {
				report.SyncErrors = append(report.SyncErrors, domain.RowError{
					Email:   rest.Email,
					Message: importCancelledMessage,
				})
			}
			report.Cancelled = true
			zap.L().Warn("roster import cancelled",
				zap.String("college_id", college.ID),
				zap.Int("remaining", len(batch.Accepted)-i),
			)
			break
		}

		res, err := s.writer.Register(ctx, student)
		if err != nil {
			metrics.ImportRows.WithLabelValues("failed").Inc()
			report.SyncErrors = append(report.SyncErrors, domain.RowError{
				Email:   student.Email,
				Message: fmt.Sprintf("Failed to sync %s: %v", student.Name, err),
			})
			continue
		}
		if res.AlreadyRegistered {
			metrics.ImportRows.WithLabelValues("already_registered").Inc()
			report.AlreadyRegistered++
			report.Notes = append(report.Notes, domain.RowError{
				Email:   student.Email,
				Message: fmt.Sprintf("%s: %s", student.Name, res.Note),
			})
			continue
		}
		metrics.ImportRows.WithLabelValues("registered").Inc()
		report.Succeeded++
	}

	status := domain.AuditSuccess
	if len(report.SyncErrors) > 0 {
		status = domain.AuditFailure
	}
	s.audit.Record(ctx, domain.ActionRosterImported, status, map[string]string{
		"college_id":         college.ID,
		"accepted":           strconv.Itoa(report.Accepted),
		"succeeded":          strconv.Itoa(report.Succeeded),
		"already_registered": strconv.Itoa(report.AlreadyRegistered),
		"rejected":           strconv.Itoa(len(report.Rejected)),
		"skipped":            strconv.Itoa(report.Skipped),
		"cancelled":          strconv.FormatBool(report.Cancelled),
	}, nil)

	return report, nil
}

// Preview reconciles text against the college without registering anything.
func (s *ImportService) Preview(ctx context.Context, collegeID, text string) (domain.ImportBatch, error) {
	_, batch, err := s.reconcile(ctx, collegeID, text)
	if err != nil {
		return domain.ImportBatch{}, err
	}

	return batch, nil
}

func (s *ImportService) reconcile(ctx context.Context, collegeID, text string) (domain.College, domain.ImportBatch, error) {
	college, err := s.colleges.FindByID(ctx, collegeID)
	if err != nil {
		return domain.College{}, domain.ImportBatch{}, fmt.Errorf("s.colleges.FindByID -> %w", err)
	}

	roster, err := s.roster.FindAll(ctx)
	if err != nil {
		return domain.College{}, domain.ImportBatch{}, fmt.Errorf("s.roster.FindAll -> %w", err)
	}

	batch, err := reconcile.Reconcile(text, college, roster, s.newID)
	if err != nil {
		return domain.College{}, domain.ImportBatch{}, fmt.Errorf("reconcile.Reconcile -> %w", err)
	}

	return college, batch, nil
}
