package domain

// Rejection is a data row refused by roster reconciliation.
type Rejection struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportBatch is the outcome of reconciling one CSV file against one college.
// It is never persisted.
type ImportBatch struct {
	Accepted []Student   `json:"accepted"`
	Rejected []Rejection `json:"rejected"`
	Skipped  int         `json:"skipped"`
}

type RowError struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ImportReport summarises one import. Succeeded counts newly written profiles only;
// rows whose student was registered meanwhile are counted in AlreadyRegistered and noted in Notes.
type ImportReport struct {
	CollegeID         string      `json:"college_id"`
	Accepted          int         `json:"accepted"`
	Succeeded         int         `json:"succeeded"`
	AlreadyRegistered int         `json:"already_registered"`
	Skipped           int         `json:"skipped"`
	Rejected          []Rejection `json:"rejected"`
	SyncErrors        []RowError  `json:"sync_errors"`
	Notes             []RowError  `json:"notes,omitempty"`
	Cancelled         bool        `json:"cancelled,omitempty"`
}
