package certificates

import (
	"time"
)

// CertificateRecord is the immutable ledger entry for one issuance. Venue and
// duration are denormalized copies captured at issuance time; later edits to
// the training must not change an already-issued certificate.
type CertificateRecord struct {
	CertificateID string    `json:"certificate_id" db:"certificate_id"`
	TraineeID     string    `json:"trainee_id" db:"trainee_id"`
	TrainingID    string    `json:"training_id" db:"training_id"`
	IssueDate     time.Time `json:"issue_date" db:"issue_date"`
	Venue         string    `json:"venue" db:"venue"`
	DurationLabel string    `json:"duration_label" db:"duration_label"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Read-side enrichment, joined from the trainee directory and training
	// catalog stores. Empty when the referenced row has since been removed.
	TraineeName   string `json:"trainee_name,omitempty" db:"trainee_name"`
	TrainingTitle string `json:"training_title,omitempty" db:"training_title"`
}

// TraineeDisplay is the display view of a trainee owned by the user registry.
type TraineeDisplay struct {
	ID       string `json:"id" db:"id"`
	FullName string `json:"full_name" db:"full_name"`
	Facility string `json:"facility" db:"facility"`
	Region   string `json:"region" db:"region"`
}

// TrainingDisplay is the display view of a training owned by the catalog.
type TrainingDisplay struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	TrainingType string    `json:"training_type" db:"training_type"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
	Venue        string    `json:"venue" db:"venue"`
	Duration     string    `json:"duration" db:"duration"`
}

// IssueRequest carries the caller-supplied inputs for one issuance.
type IssueRequest struct {
	TraineeID      string    `json:"trainee_id"`
	TrainingID     string    `json:"training_id"`
	CompletionDate time.Time `json:"completion_date"`
	Venue          string    `json:"venue"`
	DurationLabel  string    `json:"duration_label"`
}

// IssuedCertificate is the result of a completed issuance: the ledger record
// plus the rendered document bytes.
type IssuedCertificate struct {
	Record   CertificateRecord `json:"record"`
	Document []byte            `json:"-"`
}
