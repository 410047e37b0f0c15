package certificates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository is the certificate ledger. Records are insert-only; uniqueness
// of certificate_id is enforced by the store's unique constraint so
// concurrent issuance stays correct without in-process locking.
type Repository interface {
	Record(ctx context.Context, rec *CertificateRecord) error
	FindByID(ctx context.Context, certificateID string) (*CertificateRecord, error)
	ListAll(ctx context.Context) ([]CertificateRecord, error)
}

const uniqueViolation = pq.ErrorCode("23505")

// selectRecord enriches each ledger row with the trainee name and training
// title from the collaborators' stores. LEFT JOINs so a certificate survives
// removal of the referenced rows.
const selectRecord = `
	SELECT c.certificate_id, c.trainee_id, c.training_id, c.issue_date,
	       c.venue, c.duration_label, c.created_at,
	       COALESCE(u.full_name, '') AS trainee_name,
	       COALESCE(t.title, '') AS training_title
	FROM certificates c
	LEFT JOIN trainees u ON u.id = c.trainee_id
	LEFT JOIN trainings t ON t.id = c.training_id`

type postgresLedger struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresLedger{db: db}
}

func (r *postgresLedger) Record(ctx context.Context, rec *CertificateRecord) error {
	query := `
		INSERT INTO certificates (
			certificate_id, trainee_id, training_id, issue_date, venue, duration_label, created_at
		) VALUES (
			:certificate_id, :trainee_id, :training_id, :issue_date, :venue, :duration_label, :created_at
		)`
	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateID
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (r *postgresLedger) FindByID(ctx context.Context, certificateID string) (*CertificateRecord, error) {
	var rec CertificateRecord
	err := r.db.GetContext(ctx, &rec, selectRecord+" WHERE c.certificate_id = $1", certificateID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &rec, nil
}

func (r *postgresLedger) ListAll(ctx context.Context) ([]CertificateRecord, error) {
	var recs []CertificateRecord
	err := r.db.SelectContext(ctx, &recs, selectRecord+" ORDER BY c.issue_date DESC, c.created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return recs, nil
}
