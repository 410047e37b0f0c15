package stats

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mnch-training-tracker/certificates-backend/internal/certificates"
)

const recentLimit = 10

type Repository interface {
	CountTrainees(ctx context.Context) (int, error)
	CountTrainings(ctx context.Context) (int, error)
	CountCertificates(ctx context.Context, window Window) (int, error)
	CertificatesByTrainingType(ctx context.Context, window Window) ([]TypeCount, error)
	RecentCertificates(ctx context.Context) ([]RecentCertificate, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// windowCondition narrows issue_date to the reporting period. Appended to
// queries that already carry a WHERE clause.
func windowCondition(window Window) string {
	switch window {
	case WindowToday:
		return " AND c.issue_date = CURRENT_DATE"
	case WindowWeek:
		return " AND c.issue_date >= CURRENT_DATE - INTERVAL '7 days'"
	case WindowMonth:
		return " AND c.issue_date >= CURRENT_DATE - INTERVAL '30 days'"
	case WindowYear:
		return " AND c.issue_date >= CURRENT_DATE - INTERVAL '365 days'"
	default:
		return ""
	}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", certificates.ErrStoreUnavailable, err)
}

func (r *postgresRepository) CountTrainees(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM trainees"); err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

func (r *postgresRepository) CountTrainings(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM trainings"); err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

func (r *postgresRepository) CountCertificates(ctx context.Context, window Window) (int, error) {
	var n int
	query := "SELECT COUNT(*) FROM certificates c WHERE 1=1" + windowCondition(window)
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

func (r *postgresRepository) CertificatesByTrainingType(ctx context.Context, window Window) ([]TypeCount, error) {
	var counts []TypeCount
	query := fmt.Sprintf(`
		SELECT t.training_type, COUNT(*) AS count
		FROM certificates c
		JOIN trainings t ON t.id = c.training_id
		WHERE 1=1%s
		GROUP BY t.training_type
		ORDER BY t.training_type`, windowCondition(window))
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, storeErr(err)
	}
	return counts, nil
}

func (r *postgresRepository) RecentCertificates(ctx context.Context) ([]RecentCertificate, error) {
	var recent []RecentCertificate
	query := `
		SELECT c.certificate_id,
		       COALESCE(u.full_name, '') AS trainee_name,
		       COALESCE(t.title, '') AS training_title,
		       c.issue_date
		FROM certificates c
		LEFT JOIN trainees u ON u.id = c.trainee_id
		LEFT JOIN trainings t ON t.id = c.training_id
		ORDER BY c.issue_date DESC, c.created_at DESC
		LIMIT $1`
	if err := r.db.SelectContext(ctx, &recent, query, recentLimit); err != nil {
		return nil, storeErr(err)
	}
	return recent, nil
}
