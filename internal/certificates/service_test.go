package certificates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Record(ctx context.Context, rec *CertificateRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, certificateID string) (*CertificateRecord, error) {
	args := m.Called(ctx, certificateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CertificateRecord), args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]CertificateRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]CertificateRecord), args.Error(1)
}

type MockTraineeDirectory struct {
	mock.Mock
}

func (m *MockTraineeDirectory) GetTrainee(ctx context.Context, traineeID string) (*TraineeDisplay, error) {
	args := m.Called(ctx, traineeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TraineeDisplay), args.Error(1)
}

type MockTrainingCatalog struct {
	mock.Mock
}

func (m *MockTrainingCatalog) GetTraining(ctx context.Context, trainingID string) (*TrainingDisplay, error) {
	args := m.Called(ctx, trainingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TrainingDisplay), args.Error(1)
}

var testClock = stubClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

func newTestService(repo Repository, trainees TraineeDirectory, catalog TrainingCatalog) Service {
	return NewService(repo, trainees, catalog, NewIDGenerator(testClock), NewRenderer(), nil, testClock)
}

func sampleIssueRequest() IssueRequest {
	return IssueRequest{
		TraineeID:      "T1",
		TrainingID:     "TR1",
		CompletionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Venue:          "Adama Hospital",
		DurationLabel:  "5 days",
	}
}

func expectReferences(trainees *MockTraineeDirectory, catalog *MockTrainingCatalog) {
	trainees.On("GetTrainee", mock.Anything, "T1").Return(&TraineeDisplay{
		ID: "T1", FullName: "Abebe Kebede", Facility: "Adama Hospital", Region: "Oromia",
	}, nil)
	catalog.On("GetTraining", mock.Anything, "TR1").Return(&TrainingDisplay{
		ID: "TR1", Title: "Emergency Obstetric Care", TrainingType: "A",
	}, nil)
}

func TestIssueRoundTrip(t *testing.T) {
	mockRepo := new(MockRepository)
	mockTrainees := new(MockTraineeDirectory)
	mockCatalog := new(MockTrainingCatalog)
	expectReferences(mockTrainees, mockCatalog)
	mockRepo.On("Record", mock.Anything, mock.AnythingOfType("*certificates.CertificateRecord")).Return(nil)

	service := newTestService(mockRepo, mockTrainees, mockCatalog)
	req := sampleIssueRequest()

	issued, err := service.Issue(context.Background(), req)

	assert.NoError(t, err)
	assert.NotNil(t, issued)
	assert.Regexp(t, idPattern, issued.Record.CertificateID)
	assert.Equal(t, req.TraineeID, issued.Record.TraineeID)
	assert.Equal(t, req.TrainingID, issued.Record.TrainingID)
	assert.Equal(t, req.CompletionDate, issued.Record.IssueDate)
	assert.Equal(t, req.Venue, issued.Record.Venue)
	assert.Equal(t, req.DurationLabel, issued.Record.DurationLabel)
	assert.NotEmpty(t, issued.Document)
	assert.Equal(t, "%PDF", string(issued.Document[:4]))

	mockRepo.AssertExpectations(t)
}

func TestIssueTwiceAllocatesDistinctIDs(t *testing.T) {
	mockRepo := new(MockRepository)
	mockTrainees := new(MockTraineeDirectory)
	mockCatalog := new(MockTrainingCatalog)
	expectReferences(mockTrainees, mockCatalog)
	mockRepo.On("Record", mock.Anything, mock.AnythingOfType("*certificates.CertificateRecord")).Return(nil)

	service := newTestService(mockRepo, mockTrainees, mockCatalog)

	first, err := service.Issue(context.Background(), sampleIssueRequest())
	assert.NoError(t, err)
	second, err := service.Issue(context.Background(), sampleIssueRequest())
	assert.NoError(t, err)

	assert.NotEqual(t, first.Record.CertificateID, second.Record.CertificateID)
}

func TestReissueLeavesFirstRecordUnchanged(t *testing.T) {
	mockRepo := new(MockRepository)
	mockTrainees := new(MockTraineeDirectory)
	mockCatalog := new(MockTrainingCatalog)
	expectReferences(mockTrainees, mockCatalog)

	var recorded []*CertificateRecord
	mockRepo.On("Record", mock.Anything, mock.AnythingOfType("*certificates.CertificateRecord")).
		Run(func(args mock.Arguments) {
			recorded = append(recorded, args.Get(1).(*CertificateRecord))
		}).Return(nil)

	service := newTestService(mockRepo, mockTrainees, mockCatalog)

	first, err := service.Issue(context.Background(), sampleIssueRequest())
	assert.NoError(t, err)
	firstSnapshot := *recorded[0]

	second, err := service.Issue(context.Background(), sampleIssueRequest())
	assert.NoError(t, err)

	assert.NotEqual(t, first.Record.CertificateID, second.Record.CertificateID)
	assert.Equal(t, firstSnapshot, *recorded[0])
	assert.Equal(t, first.Record, *recorded[0])
}

func TestIssueTrainingNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	mockTrainees := new(MockTraineeDirectory)
	mockCatalog := new(MockTrainingCatalog)
	mockTrainees.On("GetTrainee", mock.Anything, "T1").Return(&TraineeDisplay{
		ID: "T1", FullName: "Abebe Kebede",
	}, nil)
	mockCatalog.On("GetTraining", mock.Anything, "TR1").Return(nil, ErrReferenceNotFound)

	service := newTestService(mockRepo, mockTrainees, mockCatalog)

	issued, err := service.Issue(context.Background(), sampleIssueRequest())

	assert.ErrorIs(t, err, ErrReferenceNotFound)
	assert.Nil(t, issued)
	mockRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestIssueRetriesOnDuplicateID(t *testing.T) {
	mockRepo := new(MockRepository)
	mockTrainees := new(MockTraineeDirectory)
	mockCatalog := new(MockTrainingCatalog)
	expectReferences(mockTrainees, mockCatalog)
	mockRepo.On("Record", mock.Anything, mock.AnythingOfType("*certificates.CertificateRecord")).Return(ErrDuplicateID).Twice()
	mockRepo.On("Record", mock.Anything, mock.AnythingOfType("*certificates.CertificateRecord")).Return(nil).Once()

	service := newTestService(mockRepo, mockTrainees, mockCatalog)

	issued, err := service.Issue(context.Background(), sampleIssueRequest())

	assert.NoError(t, err)
	assert.NotNil(t, issued)
	mockRepo.AssertNumberOfCalls(t, "Record", 3)
}

func TestIssueGivesUpAfterRepeatedCollisions(t *testing.T) {
	mockRepo := new(MockRepository)
	mockTrainees := new(MockTraineeDirectory)
	mockCatalog := new(MockTrainingCatalog)
	expectReferences(mockTrainees, mockCatalog)
	mockRepo.On("Record", mock.Anything, mock.AnythingOfType("*certificates.CertificateRecord")).Return(ErrDuplicateID)

	service := newTestService(mockRepo, mockTrainees, mockCatalog)

	issued, err := service.Issue(context.Background(), sampleIssueRequest())

	assert.ErrorIs(t, err, ErrIssuanceFailed)
	assert.Nil(t, issued)
	mockRepo.AssertNumberOfCalls(t, "Record", maxIDAttempts)
}

func TestIssueDoesNotReturnDocumentWhenRecordFails(t *testing.T) {
	mockRepo := new(MockRepository)
	mockTrainees := new(MockTraineeDirectory)
	mockCatalog := new(MockTrainingCatalog)
	expectReferences(mockTrainees, mockCatalog)
	mockRepo.On("Record", mock.Anything, mock.AnythingOfType("*certificates.CertificateRecord")).Return(ErrStoreUnavailable)

	service := newTestService(mockRepo, mockTrainees, mockCatalog)

	issued, err := service.Issue(context.Background(), sampleIssueRequest())

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Nil(t, issued)
}

func TestVerifyNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("FindByID", mock.Anything, "CERT-DOES-NOT-EXIST").Return(nil, ErrNotFound)

	service := newTestService(mockRepo, new(MockTraineeDirectory), new(MockTrainingCatalog))

	rec, err := service.Verify(context.Background(), "CERT-DOES-NOT-EXIST")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, rec)
}

func TestRenderDocumentRegeneratesFromLedger(t *testing.T) {
	mockRepo := new(MockRepository)
	rec := &CertificateRecord{
		CertificateID: "CERT-ABCDEF123456",
		TraineeID:     "T1",
		TrainingID:    "TR1",
		IssueDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Venue:         "Adama Hospital",
		DurationLabel: "5 days",
		TraineeName:   "Abebe Kebede",
		TrainingTitle: "Emergency Obstetric Care",
	}
	mockRepo.On("FindByID", mock.Anything, "CERT-ABCDEF123456").Return(rec, nil)

	service := newTestService(mockRepo, new(MockTraineeDirectory), new(MockTrainingCatalog))

	doc, err := service.RenderDocument(context.Background(), "CERT-ABCDEF123456")

	assert.NoError(t, err)
	assert.NotEmpty(t, doc)
	assert.Contains(t, string(doc), "Certificate ID: CERT-ABCDEF123456")
}
