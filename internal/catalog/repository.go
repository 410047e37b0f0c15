package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mnch-training-tracker/certificates-backend/internal/certificates"
)

// Repository reads training display data from the training catalog's store.
// The catalog owns the rows; this side never writes them.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetTraining(ctx context.Context, trainingID string) (*certificates.TrainingDisplay, error) {
	var training certificates.TrainingDisplay
	err := r.db.GetContext(ctx, &training, `
		SELECT id, title, training_type, start_date, end_date,
		       COALESCE(venue, '') AS venue,
		       COALESCE(duration, '') AS duration
		FROM trainings WHERE id = $1`, trainingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: training %s", certificates.ErrReferenceNotFound, trainingID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", certificates.ErrStoreUnavailable, err)
	}
	return &training, nil
}
