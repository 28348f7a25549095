package chat

import (
	"context"
	"errors"
	"time"

	registryRepo "tallerchat/database/repository/registry"
	"tallerchat/models"
)

// searchResultCap bounds plate and client history lookups.
const searchResultCap = 10

// QueryService answers the read-only chat queries. All operations are shop
// scoped and tolerate zero results.
type QueryService interface {
	ServicesToday(ctx context.Context, shopID string) ([]models.ServiceRecord, error)
	ServicesOn(ctx context.Context, shopID string, date time.Time) ([]models.ServiceRecord, error)
	ServicesInRange(ctx context.Context, shopID string, start, end time.Time) ([]models.ServiceRecord, error)
	SearchByPlate(ctx context.Context, shopID, plate string) ([]models.ServiceRecord, error)
	SearchByClient(ctx context.Context, shopID, namePart string) ([]models.ServiceRecord, error)
	StatisticsToday(ctx context.Context, shopID string) (models.DailyStatistics, error)
}

// DefaultQueryService implements QueryService over the registry store.
type DefaultQueryService struct {
	Registry registryRepo.RegistryRepository
	Now      func() time.Time
}

func (s *DefaultQueryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultQueryService) ServicesToday(ctx context.Context, shopID string) ([]models.ServiceRecord, error) {
	return s.ServicesOn(ctx, shopID, s.now())
}

func (s *DefaultQueryService) ServicesOn(ctx context.Context, shopID string, date time.Time) ([]models.ServiceRecord, error) {
	start := truncateToDay(date)
	return s.Registry.RecordsInRange(ctx, shopID, start, start.AddDate(0, 0, 1))
}

func (s *DefaultQueryService) ServicesInRange(ctx context.Context, shopID string, start, end time.Time) ([]models.ServiceRecord, error) {
	return s.Registry.RecordsInRange(ctx, shopID, truncateToDay(start), truncateToDay(end).AddDate(0, 0, 1))
}

// SearchByPlate resolves the vehicle by normalized plate and returns its
// most recent records. No such vehicle means an empty result, not an error.
func (s *DefaultQueryService) SearchByPlate(ctx context.Context, shopID, plate string) ([]models.ServiceRecord, error) {
	vehicle, err := s.Registry.FindVehicleByPlate(ctx, NormalizePlate(plate))
	if errors.Is(err, registryRepo.ErrNotFound) {
		return []models.ServiceRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Registry.RecordsByVehicle(ctx, shopID, vehicle.ID, searchResultCap)
}

// SearchByClient matches clients by case-insensitive name substring (possibly
// several) and returns the union of their records, newest first.
func (s *DefaultQueryService) SearchByClient(ctx context.Context, shopID, namePart string) ([]models.ServiceRecord, error) {
	clients, err := s.Registry.SearchClients(ctx, shopID, namePart, 0)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return []models.ServiceRecord{}, nil
	}

	ids := make([]string, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
	}
	return s.Registry.RecordsByClients(ctx, shopID, ids, searchResultCap)
}

// StatisticsToday aggregates today's records in memory: the day's set is
// small and iterating it gives the deterministic first-seen tie-break for the
// most popular service.
func (s *DefaultQueryService) StatisticsToday(ctx context.Context, shopID string) (models.DailyStatistics, error) {
	records, err := s.ServicesToday(ctx, shopID)
	if err != nil {
		return models.DailyStatistics{}, err
	}

	stats := models.DailyStatistics{Count: len(records)}

	counts := make(map[string]int)
	var seenOrder []string
	clients := make(map[string]bool)

	for _, rec := range records {
		stats.TotalRevenue += rec.Price
		if rec.Price > stats.HighestPrice {
			stats.HighestPrice = rec.Price
		}
		if _, ok := counts[rec.ServiceName]; !ok {
			seenOrder = append(seenOrder, rec.ServiceName)
		}
		counts[rec.ServiceName]++
		if rec.ClientID != "" {
			clients[rec.ClientID] = true
		}
	}
	stats.ClientsServed = len(clients)

	best := 0
	for _, name := range seenOrder {
		if counts[name] > best {
			best = counts[name]
			stats.MostPopularService = name
		}
	}
	return stats, nil
}
