package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/doseordering/internal/domain/entities"
	"github.com/zatekoja/doseordering/internal/domain/repositories"
	apperrors "github.com/zatekoja/doseordering/pkg/errors"
)

func TestVendorStore_ListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewVendorStore()

	for _, id := range []string{"V003", "V001", "V002"} {
		require.NoError(t, store.Create(ctx, &entities.Vendor{ID: id, Name: "Vendor " + id}))
	}

	vendors, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, vendors, 3)
	assert.Equal(t, "V003", vendors[0].ID)
	assert.Equal(t, "V001", vendors[1].ID)
	assert.Equal(t, "V002", vendors[2].ID)

	require.NoError(t, store.Delete(ctx, "V001"))
	vendors, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"V003", "V002"}, []string{vendors[0].ID, vendors[1].ID})
}

func TestVendorStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewVendorStore()
	original := &entities.Vendor{ID: "V001", Name: "Cardinal Health", Pricing: map[string]float64{"FDG": 500}}
	require.NoError(t, store.Create(ctx, original))

	original.Pricing["FDG"] = 1
	fetched, err := store.GetByID(ctx, "V001")
	require.NoError(t, err)
	assert.Equal(t, 500.0, fetched.Pricing["FDG"])

	fetched.Pricing["FDG"] = 2
	again, err := store.GetByID(ctx, "V001")
	require.NoError(t, err)
	assert.Equal(t, 500.0, again.Pricing["FDG"])
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := NewInsuranceStore()

	err := store.Create(ctx, &entities.InsurancePlan{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	require.NoError(t, store.Create(ctx, &entities.InsurancePlan{ID: "INS001", Name: "Blue Cross"}))
	err = store.Create(ctx, &entities.InsurancePlan{ID: "INS001"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	_, err = store.GetByID(ctx, "INS999")
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsNotFound(store.Update(ctx, &entities.InsurancePlan{ID: "INS999"})))
	assert.True(t, apperrors.IsNotFound(store.Delete(ctx, "INS999")))
}

func TestAppointmentStore_ListFilter(t *testing.T) {
	ctx := context.Background()
	store := NewAppointmentStore()
	seed := []*entities.Appointment{
		{ID: "SCH001", Date: "2025-11-10", Substance: "FDG", Status: entities.AppointmentStatusConfirmed},
		{ID: "SCH002", Date: "2025-11-11", Substance: "NaF", Status: entities.AppointmentStatusScheduled},
		{ID: "SCH003", Date: "2025-11-12", Substance: "FDG", Status: entities.AppointmentStatusConfirmed},
	}
	for _, a := range seed {
		require.NoError(t, store.Create(ctx, a))
	}

	confirmed, err := store.List(ctx, repositories.AppointmentFilter{Status: entities.AppointmentStatusConfirmed})
	require.NoError(t, err)
	assert.Len(t, confirmed, 2)

	dates := entities.SingleDate("2025-11-12")
	onDay, err := store.List(ctx, repositories.AppointmentFilter{Dates: &dates})
	require.NoError(t, err)
	require.Len(t, onDay, 1)
	assert.Equal(t, "SCH003", onDay[0].ID)

	naf, err := store.List(ctx, repositories.AppointmentFilter{Substance: "NaF"})
	require.NoError(t, err)
	require.Len(t, naf, 1)
	assert.Equal(t, "SCH002", naf[0].ID)
}

func TestDoseCreditStore_ListFilter(t *testing.T) {
	ctx := context.Background()
	store := NewDoseCreditStore()
	require.NoError(t, store.Create(ctx, &entities.DoseCredit{ID: "DC001", ReceivedDate: "2025-11-09", Reason: "Patient no-show"}))
	require.NoError(t, store.Create(ctx, &entities.DoseCredit{ID: "DC002", Reason: "Patient no-show"}))
	require.NoError(t, store.Create(ctx, &entities.DoseCredit{ID: "DC003", Reason: "Expired dose"}))

	pending, err := store.List(ctx, repositories.DoseCreditFilter{Status: entities.DoseCreditStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	received, err := store.List(ctx, repositories.DoseCreditFilter{Status: entities.DoseCreditStatusReceived})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "DC001", received[0].ID)

	noShowPending, err := store.List(ctx, repositories.DoseCreditFilter{
		Status: entities.DoseCreditStatusPending,
		Reason: "Patient no-show",
	})
	require.NoError(t, err)
	require.Len(t, noShowPending, 1)
	assert.Equal(t, "DC002", noShowPending[0].ID)
}

func TestVendorStore_UniqueName(t *testing.T) {
	ctx := context.Background()
	store := NewVendorStore()
	require.NoError(t, store.Create(ctx, &entities.Vendor{ID: "V001", Name: "Cardinal Health"}))
	require.NoError(t, store.Create(ctx, &entities.Vendor{ID: "V002", Name: "Curium"}))

	err := store.Create(ctx, &entities.Vendor{ID: "V003", Name: " cardinal health "})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	err = store.Update(ctx, &entities.Vendor{ID: "V002", Name: "CARDINAL HEALTH"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

	// keeping its own name is not a collision
	assert.NoError(t, store.Update(ctx, &entities.Vendor{ID: "V001", Name: "Cardinal Health", PaymentTerms: "Net 45"}))
}

func TestVendorStore_ConcurrentCreateSameName(t *testing.T) {
	ctx := context.Background()
	store := NewVendorStore()

	const workers = 32
	errs := make([]error, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = store.Create(ctx, &entities.Vendor{ID: fmt.Sprintf("V%03d", i), Name: "Jubilant Radiopharma"})
		}(i)
	}
	close(start)
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	}
	assert.Equal(t, 1, created)

	vendors, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, vendors, 1)
}
