package chat

import (
	"context"
	"testing"
	"time"

	"tallerchat/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, 12, 15, 14, 0, 0, 0, time.UTC)
}

func TestServicesTodayUsesFullDayWindow(t *testing.T) {
	var gotStart, gotEnd time.Time
	registry := &mockRegistry{
		RecordsInRangeFn: func(_ context.Context, _ string, start, end time.Time) ([]models.ServiceRecord, error) {
			gotStart, gotEnd = start, end
			return nil, nil
		},
	}
	svc := &DefaultQueryService{Registry: registry, Now: fixedNow}

	_, err := svc.ServicesToday(context.Background(), "shop-1")

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC), gotStart)
	assert.Equal(t, time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC), gotEnd)
}

func TestServicesInRangeIsEndInclusive(t *testing.T) {
	var gotEnd time.Time
	registry := &mockRegistry{
		RecordsInRangeFn: func(_ context.Context, _ string, _, end time.Time) ([]models.ServiceRecord, error) {
			gotEnd = end
			return nil, nil
		},
	}
	svc := &DefaultQueryService{Registry: registry, Now: fixedNow}

	start := time.Date(2024, 12, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 12, 18, 0, 0, 0, time.UTC)
	_, err := svc.ServicesInRange(context.Background(), "shop-1", start, end)

	require.NoError(t, err)
	// Records on the end date itself are included.
	assert.Equal(t, time.Date(2024, 12, 13, 0, 0, 0, 0, time.UTC), gotEnd)
}

func TestSearchByPlateUnknownVehicleIsEmpty(t *testing.T) {
	svc := &DefaultQueryService{Registry: &mockRegistry{}, Now: fixedNow}

	records, err := svc.SearchByPlate(context.Background(), "shop-1", "ZZZ-999")

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearchByPlateNormalizesBeforeLookup(t *testing.T) {
	var lookedUp string
	registry := &mockRegistry{
		FindVehicleByPlateFn: func(_ context.Context, plate string) (*models.Vehicle, error) {
			lookedUp = plate
			return &models.Vehicle{ID: "veh-1", Plate: plate}, nil
		},
		RecordsByVehicleFn: func(_ context.Context, _ string, vehicleID string, limit int) ([]models.ServiceRecord, error) {
			assert.Equal(t, "veh-1", vehicleID)
			assert.Equal(t, searchResultCap, limit)
			return []models.ServiceRecord{{ID: "rec-1"}}, nil
		},
	}
	svc := &DefaultQueryService{Registry: registry, Now: fixedNow}

	records, err := svc.SearchByPlate(context.Background(), "shop-1", "abc 123")

	require.NoError(t, err)
	assert.Equal(t, "ABC123", lookedUp)
	assert.Len(t, records, 1)
}

func TestSearchByClientNoMatchesIsEmpty(t *testing.T) {
	svc := &DefaultQueryService{Registry: &mockRegistry{}, Now: fixedNow}

	records, err := svc.SearchByClient(context.Background(), "shop-1", "Nadie")

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearchByClientUnionsMatchingClients(t *testing.T) {
	registry := &mockRegistry{
		SearchClientsFn: func(_ context.Context, _ string, _ string, limit int) ([]models.Client, error) {
			// All matching clients participate, not just the first page.
			assert.Zero(t, limit)
			return []models.Client{{ID: "c1"}, {ID: "c2"}}, nil
		},
		RecordsByClientsFn: func(_ context.Context, _ string, clientIDs []string, _ int) ([]models.ServiceRecord, error) {
			assert.Equal(t, []string{"c1", "c2"}, clientIDs)
			return []models.ServiceRecord{{ID: "rec-1"}, {ID: "rec-2"}}, nil
		},
	}
	svc := &DefaultQueryService{Registry: registry, Now: fixedNow}

	records, err := svc.SearchByClient(context.Background(), "shop-1", "Juan")

	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStatisticsToday(t *testing.T) {
	records := []models.ServiceRecord{
		{ServiceName: "Lavado completo", Price: 35000, ClientID: "c1"},
		{ServiceName: "Cambio aceite", Price: 50000, ClientID: "c2"},
		{ServiceName: "Lavado completo", Price: 35000, ClientID: "c1"},
		{ServiceName: "Encerado", Price: 20000},
	}
	registry := &mockRegistry{
		RecordsInRangeFn: func(_ context.Context, _ string, _, _ time.Time) ([]models.ServiceRecord, error) {
			return records, nil
		},
	}
	svc := &DefaultQueryService{Registry: registry, Now: fixedNow}

	stats, err := svc.StatisticsToday(context.Background(), "shop-1")

	require.NoError(t, err)
	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, int64(140000), stats.TotalRevenue)
	assert.Equal(t, int64(50000), stats.HighestPrice)
	assert.Equal(t, "Lavado completo", stats.MostPopularService)
	// Anonymous records do not count as distinct clients.
	assert.Equal(t, 2, stats.ClientsServed)
}

func TestStatisticsTodayPopularityTieBreaksFirstSeen(t *testing.T) {
	records := []models.ServiceRecord{
		{ServiceName: "Cambio aceite", Price: 50000},
		{ServiceName: "Lavado completo", Price: 35000},
	}
	registry := &mockRegistry{
		RecordsInRangeFn: func(_ context.Context, _ string, _, _ time.Time) ([]models.ServiceRecord, error) {
			return records, nil
		},
	}
	svc := &DefaultQueryService{Registry: registry, Now: fixedNow}

	stats, err := svc.StatisticsToday(context.Background(), "shop-1")

	require.NoError(t, err)
	assert.Equal(t, "Cambio aceite", stats.MostPopularService)
}

func TestStatisticsTodayEmptyDay(t *testing.T) {
	svc := &DefaultQueryService{Registry: &mockRegistry{}, Now: fixedNow}

	stats, err := svc.StatisticsToday(context.Background(), "shop-1")

	require.NoError(t, err)
	assert.Zero(t, stats.Count)
	assert.Zero(t, stats.TotalRevenue)
	assert.Empty(t, stats.MostPopularService)
}
