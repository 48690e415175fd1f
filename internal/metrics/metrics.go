package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sparks"

// Registration outcomes.
const (
	OutcomeRegistered        = "registered"
	OutcomeAlreadyRegistered = "already_registered"
	OutcomeIdentityFailed    = "identity_failed"
	OutcomeConsistency       = "consistency_violation"
	OutcomeProfileFailed     = "profile_failed"
	OutcomeRollbackFailed    = "rollback_failed"
)

var (
	Registrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "registrations_total", Help: "Student registrations by outcome",
	}, []string{"outcome"})
	Rollbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "identity_rollbacks_total", Help: "Compensating identity deletions by result",
	}, []string{"result"})
	OrphanedAccounts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "orphaned_identity_accounts_total", Help: "Identity accounts left without a profile",
	})
	ImportRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "import_rows_total", Help: "Roster import rows by result",
	}, []string{"result"})
	AuditWriteErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "audit_write_errors_total", Help: "Audit entries that could not be stored",
	})
)

func init() {
	prometheus.MustRegister(Registrations, Rollbacks, OrphanedAccounts, ImportRows, AuditWriteErrors)
}

func Handler() http.Handler { return promhttp.Handler() }
