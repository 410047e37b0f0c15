package stats

import "time"

// Window selects the reporting period for certificate counts.
type Window string

const (
	WindowToday Window = "today"
	WindowWeek  Window = "7d"
	WindowMonth Window = "30d"
	WindowYear  Window = "365d"
	WindowAll   Window = "all"
)

// Dashboard is the aggregate view behind the administrative dashboard.
type Dashboard struct {
	Window               Window              `json:"window"`
	TotalTrainees        int                 `json:"total_trainees"`
	TotalTrainings       int                 `json:"total_trainings"`
	TotalCertificates    int                 `json:"total_certificates"`
	CertificatesInWindow int                 `json:"certificates_in_window"`
	ByTrainingType       []TypeCount         `json:"by_training_type"`
	RecentCertificates   []RecentCertificate `json:"recent_certificates"`
}

// TypeCount is the number of certificates issued per training type code.
type TypeCount struct {
	TrainingType string `json:"training_type" db:"training_type"`
	Count        int    `json:"count" db:"count"`
}

// RecentCertificate is one row of the dashboard's latest-issuances table.
type RecentCertificate struct {
	CertificateID string    `json:"certificate_id" db:"certificate_id"`
	TraineeName   string    `json:"trainee_name" db:"trainee_name"`
	TrainingTitle string    `json:"training_title" db:"training_title"`
	IssueDate     time.Time `json:"issue_date" db:"issue_date"`
}
