package certificates

import (
	"context"
	"errors"
	"log"
	"time"
)

// TraineeDirectory is the external user registry, read-only from here.
type TraineeDirectory interface {
	GetTrainee(ctx context.Context, traineeID string) (*TraineeDisplay, error)
}

// TrainingCatalog is the external training catalog, read-only from here.
type TrainingCatalog interface {
	GetTraining(ctx context.Context, trainingID string) (*TrainingDisplay, error)
}

// Archiver keeps a copy of issued documents. Archiving is best effort and
// never blocks or fails an issuance.
type Archiver interface {
	Archive(ctx context.Context, certificateID string, document []byte) error
}

type Service interface {
	Issue(ctx context.Context, req IssueRequest) (*IssuedCertificate, error)
	Verify(ctx context.Context, certificateID string) (*CertificateRecord, error)
	List(ctx context.Context) ([]CertificateRecord, error)
	RenderDocument(ctx context.Context, certificateID string) ([]byte, error)
}

// maxIDAttempts bounds re-allocation after a ledger uniqueness collision.
const maxIDAttempts = 3

const archiveTimeout = 30 * time.Second

type issuanceService struct {
	repo     Repository
	trainees TraineeDirectory
	catalog  TrainingCatalog
	idgen    *IDGenerator
	renderer *Renderer
	archive  Archiver // nil when archiving is disabled
	clock    Clock
}

func NewService(repo Repository, trainees TraineeDirectory, catalog TrainingCatalog,
	idgen *IDGenerator, renderer *Renderer, archive Archiver, clock Clock) Service {
	if clock == nil {
		clock = SystemClock()
	}
	return &issuanceService{
		repo:     repo,
		trainees: trainees,
		catalog:  catalog,
		idgen:    idgen,
		renderer: renderer,
		archive:  archive,
		clock:    clock,
	}
}

// Issue runs one atomic issuance: validate references, allocate identifier,
// render, record. Display fields are fetched once up front so the rendered
// document and the ledger record describe the same point-in-time view. A
// ledger failure after a successful render returns an error, never the
// document; a retry allocates a fresh identifier.
func (s *issuanceService) Issue(ctx context.Context, req IssueRequest) (*IssuedCertificate, error) {
	trainee, err := s.trainees.GetTrainee(ctx, req.TraineeID)
	if err != nil {
		return nil, err
	}
	training, err := s.catalog.GetTraining(ctx, req.TrainingID)
	if err != nil {
		return nil, err
	}

	input := RenderInput{
		TraineeName:    trainee.FullName,
		TrainingTitle:  training.Title,
		CompletionDate: req.CompletionDate,
		Venue:          req.Venue,
		DurationLabel:  req.DurationLabel,
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.idgen.GenerateID(req.TraineeID, req.TrainingID)
		if err != nil {
			return nil, err
		}
		input.CertificateID = id

		doc, err := s.renderer.Render(input)
		if err != nil {
			return nil, err
		}

		rec := &CertificateRecord{
			CertificateID: id,
			TraineeID:     req.TraineeID,
			TrainingID:    req.TrainingID,
			IssueDate:     req.CompletionDate,
			Venue:         req.Venue,
			DurationLabel: req.DurationLabel,
			CreatedAt:     s.clock.Now(),
			TraineeName:   trainee.FullName,
			TrainingTitle: training.Title,
		}

		if err := s.repo.Record(ctx, rec); err != nil {
			if errors.Is(err, ErrDuplicateID) {
				continue
			}
			return nil, err
		}

		if s.archive != nil {
			go s.archiveDocument(id, doc)
		}

		return &IssuedCertificate{Record: *rec, Document: doc}, nil
	}

	return nil, ErrIssuanceFailed
}

// Verify is a pure read: the enriched record or ErrNotFound.
func (s *issuanceService) Verify(ctx context.Context, certificateID string) (*CertificateRecord, error) {
	return s.repo.FindByID(ctx, certificateID)
}

func (s *issuanceService) List(ctx context.Context) ([]CertificateRecord, error) {
	return s.repo.ListAll(ctx)
}

// RenderDocument regenerates the document for an already-issued certificate
// from its ledger record. The document is derived state, never stored as
// primary.
func (s *issuanceService) RenderDocument(ctx context.Context, certificateID string) ([]byte, error) {
	rec, err := s.repo.FindByID(ctx, certificateID)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(RenderInput{
		CertificateID:  rec.CertificateID,
		TraineeName:    rec.TraineeName,
		TrainingTitle:  rec.TrainingTitle,
		CompletionDate: rec.IssueDate,
		Venue:          rec.Venue,
		DurationLabel:  rec.DurationLabel,
	})
}

func (s *issuanceService) archiveDocument(certificateID string, document []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()
	if err := s.archive.Archive(ctx, certificateID, document); err != nil {
		log.Printf("certificates: archive failed for %s: %v", certificateID, err)
	}
}
