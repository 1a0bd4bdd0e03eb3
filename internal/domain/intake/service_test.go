package intake_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/domain/intake"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/mocks"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/platform/memory"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/store"
	"github.com/danbfiorotto/brunatorellidelivery-sub002/internal/validation"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

func newTestService(t *testing.T, repo intake.PatientRepository) intake.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := intake.NewService(repo, logger, intake.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	return svc
}

func newTestPatient(t *testing.T) *domain.Patient {
	t.Helper()
	p, err := domain.NewPatient(domain.PatientParams{
		ID:     "patient-1",
		Name:   "Ana Souza",
		UserID: "user-1",
	})
	require.NoError(t, err)
	return p
}

func TestNewService(t *testing.T) {
	t.Parallel()

	svc, err := intake.NewService(nil, nil)
	assert.Nil(t, svc)
	var serviceErr *intake.ServiceError
	assert.ErrorAs(t, err, &serviceErr)

	svc, err = intake.NewService(&mocks.TestifyMockPatientStore{}, nil)
	assert.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestResolvePatient_ExplicitIDSkipsRepository(t *testing.T) {
	t.Parallel()

	repo := &mocks.TestifyMockPatientStore{}
	svc := newTestService(t, repo)

	id, err := svc.ResolvePatient(context.Background(), intake.PatientData{PatientID: "x"})

	require.NoError(t, err)
	assert.Equal(t, "x", id)
	repo.AssertNotCalled(t, "FindByNameOrEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResolvePatient_RequiresName(t *testing.T) {
	t.Parallel()

	repo := &mocks.TestifyMockPatientStore{}
	svc := newTestService(t, repo)

	_, err := svc.ResolvePatient(context.Background(), intake.PatientData{PatientName: "   "})

	assert.ErrorIs(t, err, intake.ErrPatientNameRequired)
	assert.True(t, domain.IsDomainRuleError(err))
	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "patient_name", fe.Field)
	repo.AssertNotCalled(t, "FindByNameOrEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolvePatient_NotFoundWithoutUserID(t *testing.T) {
	t.Parallel()

	repo := &mocks.TestifyMockPatientStore{}
	repo.On("FindByNameOrEmail", mock.Anything, "Ana", "", "").Return(nil, store.ErrPatientNotFound)
	svc := newTestService(t, repo)

	_, err := svc.ResolvePatient(context.Background(), intake.PatientData{PatientName: "Ana"})

	assert.ErrorIs(t, err, intake.ErrUserIDRequired)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestResolvePatient_CreatesNewPatient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		lookupErr error
	}{
		{name: "store reports not found", lookupErr: store.ErrPatientNotFound},
		{name: "store returns nothing", lookupErr: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mocks.TestifyMockPatientStore{}
			repo.On("FindByNameOrEmail", mock.Anything, "ana souza", "ana@example.com", "user-1").
				Return(nil, tt.lookupErr)
			var created *domain.Patient
			repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Patient) bool {
				return p.Name().String() == "Ana Souza" &&
					p.Email() != nil && p.Email().String() == "ana@example.com" &&
					p.UserID() == "user-1"
			})).Run(func(args mock.Arguments) {
				created = args.Get(1).(*domain.Patient)
			}).Return(nil)
			svc := newTestService(t, repo)

			id, err := svc.ResolvePatient(context.Background(), intake.PatientData{
				PatientName:  "ana souza",
				PatientEmail: "ana@example.com",
				UserID:       "user-1",
			})

			require.NoError(t, err)
			require.NotNil(t, created)
			assert.Equal(t, created.ID(), id)
			assert.NotEmpty(t, id)
			repo.AssertExpectations(t)
		})
	}
}

func TestResolvePatient_EnrichesExistingPatient(t *testing.T) {
	t.Parallel()

	existing := newTestPatient(t)
	repo := &mocks.TestifyMockPatientStore{}
	repo.On("FindByNameOrEmail", mock.Anything, "Ana Souza", "ana@example.com", "user-1").Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Patient) bool {
		return p.ID() == "patient-1" &&
			p.Email() != nil && p.Email().String() == "ana@example.com" &&
			p.Phone() != nil && p.Phone().String() == "11999999999"
	})).Return(nil)
	svc := newTestService(t, repo)

	id, err := svc.ResolvePatient(context.Background(), intake.PatientData{
		PatientName:  "Ana Souza",
		PatientEmail: "ana@example.com",
		PatientPhone: "(11) 99999-9999",
		UserID:       " user-1 ",
	})

	require.NoError(t, err)
	assert.Equal(t, "patient-1", id)
	assert.Equal(t, "user-1", existing.UserID())
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestResolvePatient_ExistingPatientWithoutContactIsNotSaved(t *testing.T) {
	t.Parallel()

	existing := newTestPatient(t)
	repo := &mocks.TestifyMockPatientStore{}
	repo.On("FindByNameOrEmail", mock.Anything, "Ana Souza", "", "user-1").Return(existing, nil)
	svc := newTestService(t, repo)

	id, err := svc.ResolvePatient(context.Background(), intake.PatientData{
		PatientName: "Ana Souza",
		UserID:      "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "patient-1", id)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResolvePatient_InvalidEnrichmentLeavesPatientUnchanged(t *testing.T) {
	t.Parallel()

	existing := newTestPatient(t)
	repo := &mocks.TestifyMockPatientStore{}
	repo.On("FindByNameOrEmail", mock.Anything, "Ana Souza", "", "user-1").Return(existing, nil)
	svc := newTestService(t, repo)

	_, err := svc.ResolvePatient(context.Background(), intake.PatientData{
		PatientName:  "Ana Souza",
		PatientPhone: "123",
		UserID:       "user-1",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidPhone)
	assert.Nil(t, existing.Phone())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResolvePatient_RepositoryFailures(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection reset")

	t.Run("lookup", func(t *testing.T) {
		t.Parallel()
		repo := &mocks.TestifyMockPatientStore{}
		repo.On("FindByNameOrEmail", mock.Anything, "Ana", "", "u").Return(nil, dbErr)
		svc := newTestService(t, repo)

		_, err := svc.ResolvePatient(context.Background(), intake.PatientData{PatientName: "Ana", UserID: "u"})

		var serviceErr *intake.ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "resolve_patient", serviceErr.Operation)
		assert.ErrorIs(t, err, dbErr)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		repo := &mocks.TestifyMockPatientStore{}
		repo.On("FindByNameOrEmail", mock.Anything, "Ana", "", "u").Return(nil, store.ErrPatientNotFound)
		repo.On("Create", mock.Anything, mock.Anything).Return(store.ErrPatientExists)
		svc := newTestService(t, repo)

		_, err := svc.ResolvePatient(context.Background(), intake.PatientData{PatientName: "Ana", UserID: "u"})

		assert.ErrorIs(t, err, store.ErrPatientExists)
		assert.True(t, store.IsDuplicateError(err))
	})
}

func TestResolvePatient_DoesNotCrossUsers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewPatientStore()
	owned, err := domain.NewPatient(domain.PatientParams{
		ID:     "patient-a",
		Name:   "Ana Souza",
		Email:  "ana@example.com",
		Phone:  "11999999999",
		UserID: "user-a",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, owned))
	svc := newTestService(t, repo)

	id, err := svc.ResolvePatient(ctx, intake.PatientData{
		PatientName:  "Ana Souza",
		PatientEmail: "ana@example.com",
		PatientPhone: "11888888888",
		UserID:       "user-b",
	})

	require.NoError(t, err)
	assert.NotEqual(t, "patient-a", id)
	assert.Equal(t, 2, repo.Len())

	created, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "user-b", created.UserID())

	untouched, err := repo.FindByID(ctx, "patient-a")
	require.NoError(t, err)
	assert.Equal(t, "user-a", untouched.UserID())
	require.NotNil(t, untouched.Phone())
	assert.Equal(t, "11999999999", untouched.Phone().String())

	again, err := svc.ResolvePatient(ctx, intake.PatientData{PatientName: "ana souza", UserID: "user-a"})
	require.NoError(t, err)
	assert.Equal(t, "patient-a", again)
}

func TestUpdateLastVisit(t *testing.T) {
	t.Parallel()

	yesterday, err := domain.NewDate(2024, time.June, 14)
	require.NoError(t, err)
	tomorrow, err := domain.NewDate(2024, time.June, 16)
	require.NoError(t, err)

	t.Run("missing arguments are a no-op", func(t *testing.T) {
		t.Parallel()
		repo := &mocks.TestifyMockPatientStore{}
		svc := newTestService(t, repo)

		assert.NoError(t, svc.UpdateLastVisit(context.Background(), "", &yesterday))
		assert.NoError(t, svc.UpdateLastVisit(context.Background(), "patient-1", nil))
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown patient is a no-op", func(t *testing.T) {
		t.Parallel()
		repo := &mocks.TestifyMockPatientStore{}
		repo.On("FindByID", mock.Anything, "ghost").Return(nil, store.ErrPatientNotFound)
		svc := newTestService(t, repo)

		assert.NoError(t, svc.UpdateLastVisit(context.Background(), "ghost", &yesterday))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("records the visit", func(t *testing.T) {
		t.Parallel()
		repo := &mocks.TestifyMockPatientStore{}
		repo.On("FindByID", mock.Anything, "patient-1").Return(newTestPatient(t), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Patient) bool {
			return p.LastVisit() != nil && p.LastVisit().Equals(yesterday)
		})).Return(nil)
		svc := newTestService(t, repo)

		assert.NoError(t, svc.UpdateLastVisit(context.Background(), "patient-1", &yesterday))
		repo.AssertExpectations(t)
	})

	t.Run("future visit is rejected", func(t *testing.T) {
		t.Parallel()
		repo := &mocks.TestifyMockPatientStore{}
		repo.On("FindByID", mock.Anything, "patient-1").Return(newTestPatient(t), nil)
		svc := newTestService(t, repo)

		err := svc.UpdateLastVisit(context.Background(), "patient-1", &tomorrow)

		assert.ErrorIs(t, err, domain.ErrFutureLastVisit)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestValidatePatientData(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &mocks.TestifyMockPatientStore{})

	res := svc.ValidatePatientData(validation.PatientFields{Email: "not-an-email"})

	assert.False(t, res.IsValid)
	assert.Contains(t, res.Errors, "email")

	res = svc.ValidatePatientData(validation.PatientFields{Name: "Ana", Email: "ana@example.com"})
	assert.True(t, res.IsValid)
}
