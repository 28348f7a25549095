package chat

import (
	"context"
	"strings"
	"time"

	catalogRepo "tallerchat/database/repository/catalog"
	registryRepo "tallerchat/database/repository/registry"
	"tallerchat/models"
)

// mockRegistry implements registryRepo.RegistryRepository with overridable
// function fields. Unset methods return empty results.
type mockRegistry struct {
	FindClientByNameFn   func(ctx context.Context, shopID, name string) (*models.Client, error)
	SearchClientsFn      func(ctx context.Context, shopID, namePart string, limit int) ([]models.Client, error)
	FindVehicleByPlateFn func(ctx context.Context, plate string) (*models.Vehicle, error)
	RecordsInRangeFn     func(ctx context.Context, shopID string, start, end time.Time) ([]models.ServiceRecord, error)
	RecordsByVehicleFn   func(ctx context.Context, shopID, vehicleID string, limit int) ([]models.ServiceRecord, error)
	RecordsByClientsFn   func(ctx context.Context, shopID string, clientIDs []string, limit int) ([]models.ServiceRecord, error)
	RecentRecordsFn      func(ctx context.Context, shopID string, limit int) ([]models.ServiceRecord, error)
	InsertRecordFn       func(ctx context.Context, record *models.ServiceRecord) error
	RegisterVisitFn      func(ctx context.Context, shopID string, data models.ParsedService, clientName string, now time.Time) (*models.ServiceRecord, error)
}

func (m *mockRegistry) FindClientByName(ctx context.Context, shopID, name string) (*models.Client, error) {
	if m.FindClientByNameFn != nil {
		return m.FindClientByNameFn(ctx, shopID, name)
	}
	return nil, registryRepo.ErrNotFound
}

func (m *mockRegistry) SearchClients(ctx context.Context, shopID, namePart string, limit int) ([]models.Client, error) {
	if m.SearchClientsFn != nil {
		return m.SearchClientsFn(ctx, shopID, namePart, limit)
	}
	return nil, nil
}

func (m *mockRegistry) FindVehicleByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	if m.FindVehicleByPlateFn != nil {
		return m.FindVehicleByPlateFn(ctx, plate)
	}
	return nil, registryRepo.ErrNotFound
}

func (m *mockRegistry) RecordsInRange(ctx context.Context, shopID string, start, end time.Time) ([]models.ServiceRecord, error) {
	if m.RecordsInRangeFn != nil {
		return m.RecordsInRangeFn(ctx, shopID, start, end)
	}
	return nil, nil
}

func (m *mockRegistry) RecordsByVehicle(ctx context.Context, shopID, vehicleID string, limit int) ([]models.ServiceRecord, error) {
	if m.RecordsByVehicleFn != nil {
		return m.RecordsByVehicleFn(ctx, shopID, vehicleID, limit)
	}
	return nil, nil
}

func (m *mockRegistry) RecordsByClients(ctx context.Context, shopID string, clientIDs []string, limit int) ([]models.ServiceRecord, error) {
	if m.RecordsByClientsFn != nil {
		return m.RecordsByClientsFn(ctx, shopID, clientIDs, limit)
	}
	return nil, nil
}

func (m *mockRegistry) RecentRecords(ctx context.Context, shopID string, limit int) ([]models.ServiceRecord, error) {
	if m.RecentRecordsFn != nil {
		return m.RecentRecordsFn(ctx, shopID, limit)
	}
	return nil, nil
}

func (m *mockRegistry) InsertRecord(ctx context.Context, record *models.ServiceRecord) error {
	if m.InsertRecordFn != nil {
		return m.InsertRecordFn(ctx, record)
	}
	return nil
}

func (m *mockRegistry) RegisterVisit(ctx context.Context, shopID string, data models.ParsedService, clientName string, now time.Time) (*models.ServiceRecord, error) {
	if m.RegisterVisitFn != nil {
		return m.RegisterVisitFn(ctx, shopID, data, clientName, now)
	}
	return nil, registryRepo.ErrNotFound
}

// mockCatalog implements catalogRepo.CatalogRepository over a fixed slice of
// definitions.
type mockCatalog struct {
	services []models.ServiceDefinition

	incremented []string
}

func (m *mockCatalog) ActiveServices(ctx context.Context, shopID string) ([]models.ServiceDefinition, error) {
	return m.services, nil
}

func (m *mockCatalog) FindByName(ctx context.Context, shopID, name string) (*models.ServiceDefinition, error) {
	for i := range m.services {
		if strings.EqualFold(m.services[i].Name, name) {
			return &m.services[i], nil
		}
	}
	return nil, catalogRepo.ErrNotFound
}

func (m *mockCatalog) GetByID(ctx context.Context, shopID, id string) (*models.ServiceDefinition, error) {
	for i := range m.services {
		if m.services[i].ID == id {
			return &m.services[i], nil
		}
	}
	return nil, catalogRepo.ErrNotFound
}

func (m *mockCatalog) IncrementUsage(ctx context.Context, shopID, name string) error {
	m.incremented = append(m.incremented, name)
	return nil
}

func (m *mockCatalog) Create(ctx context.Context, svc *models.ServiceDefinition) error {
	m.services = append(m.services, *svc)
	return nil
}

func (m *mockCatalog) Deactivate(ctx context.Context, shopID, id string) error {
	return nil
}

func (m *mockCatalog) Popular(ctx context.Context, shopID string, limit int) ([]models.ServiceDefinition, error) {
	return m.services, nil
}

func (m *mockCatalog) Search(ctx context.Context, shopID, query string, limit int) ([]models.ServiceDefinition, error) {
	return m.services, nil
}

// mockConversations keeps one conversation per shop in memory.
type mockConversations struct {
	conversations map[string]*models.Conversation
	saved         int
}

func newMockConversations() *mockConversations {
	return &mockConversations{conversations: make(map[string]*models.Conversation)}
}

func (m *mockConversations) ActiveForShop(ctx context.Context, shopID string) (*models.Conversation, error) {
	if conv, ok := m.conversations[shopID]; ok {
		return conv, nil
	}
	conv := &models.Conversation{
		ID:     "conv-" + shopID,
		ShopID: shopID,
		State:  models.StateIdle,
	}
	m.conversations[shopID] = conv
	return conv, nil
}

func (m *mockConversations) Save(ctx context.Context, conv *models.Conversation) error {
	m.conversations[conv.ShopID] = conv
	m.saved++
	return nil
}

func (m *mockConversations) AppendMessage(ctx context.Context, conversationID string, msg models.ChatMessage) error {
	return nil
}

func (m *mockConversations) FindStale(ctx context.Context, cutoff time.Time) ([]models.Conversation, error) {
	return nil, nil
}

// recordingSink captures analytics events synchronously.
type recordingSink struct {
	events []models.AnalyticsEvent
}

func (s *recordingSink) Track(shopID, eventType string, metadata map[string]any) {
	s.events = append(s.events, models.AnalyticsEvent{
		ShopID:    shopID,
		EventType: eventType,
		Metadata:  metadata,
	})
}
