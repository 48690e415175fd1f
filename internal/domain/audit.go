package domain

import "time"

type AuditStatus string

const (
	AuditSuccess AuditStatus = "SUCCESS"
	AuditFailure AuditStatus = "FAILURE"
)

// Audit actions recorded by the registration protocol and the console.
const (
	ActionAccountCreate    = "AUTH_ACCOUNT_CREATE"
	ActionAccountCreated   = "AUTH_ACCOUNT_CREATED"
	ActionRollback         = "AUTH_ROLLBACK"
	ActionOrphanedAccount  = "AUTH_ORPHANED_ACCOUNT"
	ActionProfileDeleted   = "STUDENT_PROFILE_DELETED"
	ActionDeleteFailed     = "STUDENT_DELETE_FAILED"
	ActionCollegeCreated   = "COLLEGE_CREATED"
	ActionCollegeStatus    = "COLLEGE_STATUS_CHANGED"
	ActionPointsAwarded    = "STUDENT_POINTS_AWARDED"
	ActionSeasonArchived   = "SEASON_ARCHIVED"
	ActionRosterImported   = "ROSTER_IMPORTED"
	ActionWorkshopCreated  = "WORKSHOP_CREATED"
	ActionSubmissionGraded = "SUBMISSION_GRADED"
	DefaultPerformedBy     = "system"
	AuditDetailRequestID   = "request_id"
	AuditDetailOrphanedUID = "orphaned_uid"
)

type AuditEntry struct {
	ID          string            `json:"id"`
	Action      string            `json:"action"`
	Timestamp   time.Time         `json:"timestamp"`
	Details     map[string]string `json:"details"`
	Status      AuditStatus       `json:"status"`
	Error       string            `json:"error,omitempty"`
	PerformedBy string            `json:"performed_by"`
}
