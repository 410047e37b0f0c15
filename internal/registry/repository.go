package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mnch-training-tracker/certificates-backend/internal/certificates"
)

// Repository reads trainee display data from the user registry's store. The
// registry owns the rows; this side never writes them.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetTrainee(ctx context.Context, traineeID string) (*certificates.TraineeDisplay, error) {
	var trainee certificates.TraineeDisplay
	err := r.db.GetContext(ctx, &trainee, `
		SELECT id, full_name,
		       COALESCE(facility, '') AS facility,
		       COALESCE(region, '') AS region
		FROM trainees WHERE id = $1`, traineeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: trainee %s", certificates.ErrReferenceNotFound, traineeID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", certificates.ErrStoreUnavailable, err)
	}
	return &trainee, nil
}
