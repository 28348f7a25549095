package shop

import (
	"context"
	"fmt"
	"time"

	catalogRepo "tallerchat/database/repository/catalog"
	conversationRepo "tallerchat/database/repository/conversation"
	registryRepo "tallerchat/database/repository/registry"
	"tallerchat/models"
	"tallerchat/services/chat"

	"go.uber.org/zap"
)

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Catalog       catalogRepo.CatalogRepository
	Registry      registryRepo.RegistryRepository
	Conversations conversationRepo.ConversationRepository
	Analytics     chat.AnalyticsSink
	Logger        *zap.Logger
	Now           func() time.Time
}

func (s *DefaultCatalogService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultCatalogService) List(ctx context.Context, shopID string) ([]models.ServiceDefinition, error) {
	return s.Catalog.ActiveServices(ctx, shopID)
}

func (s *DefaultCatalogService) Popular(ctx context.Context, shopID string, limit int) ([]models.ServiceDefinition, error) {
	return s.Catalog.Popular(ctx, shopID, limit)
}

func (s *DefaultCatalogService) Create(ctx context.Context, shopID, name string, price int64) (*models.ServiceDefinition, error) {
	if name == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative")
	}
	svc := &models.ServiceDefinition{
		ShopID: shopID,
		Name:   name,
		Price:  price,
	}
	if err := s.Catalog.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *DefaultCatalogService) Deactivate(ctx context.Context, shopID, serviceID string) error {
	return s.Catalog.Deactivate(ctx, shopID, serviceID)
}

func (s *DefaultCatalogService) Search(ctx context.Context, shopID, query string, limit int) ([]models.ServiceDefinition, error) {
	return s.Catalog.Search(ctx, shopID, query, limit)
}

// QuickRegister records a catalog entry at list price with no client or
// vehicle, bumps its usage counter, and drops a confirmation message into the
// shop's conversation. Returns the record and the chat message text.
func (s *DefaultCatalogService) QuickRegister(ctx context.Context, shopID, serviceID string) (*models.ServiceRecord, string, error) {
	svc, err := s.Catalog.GetByID(ctx, shopID, serviceID)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	record := &models.ServiceRecord{
		ShopID:      shopID,
		ServiceName: svc.Name,
		Price:       svc.Price,
		ServiceDate: now,
	}
	if err := s.Registry.InsertRecord(ctx, record); err != nil {
		return nil, "", err
	}
	if err := s.Catalog.IncrementUsage(ctx, shopID, svc.Name); err != nil {
		s.Logger.Warn("quick register: failed to increment usage",
			zap.String("serviceName", svc.Name), zap.Error(err))
	}

	message := fmt.Sprintf("✅ %s registrado exitosamente por $%s", svc.Name, chat.FormatPrice(svc.Price))

	conv, err := s.Conversations.ActiveForShop(ctx, shopID)
	if err != nil {
		s.Logger.Warn("quick register: failed to load conversation", zap.Error(err))
	} else {
		msg := models.ChatMessage{
			Role:      "assistant",
			Content:   message,
			Action:    models.ActionQuickRegistered,
			Timestamp: now,
		}
		if err := s.Conversations.AppendMessage(ctx, conv.ID, msg); err != nil {
			s.Logger.Warn("quick register: failed to append message", zap.Error(err))
		}
	}

	if s.Analytics != nil {
		s.Analytics.Track(shopID, models.EventServiceRegistered, map[string]any{
			"serviceRecordId": record.ID,
			"serviceName":     record.ServiceName,
			"price":           record.Price,
			"hasVehicle":      false,
		})
		s.Analytics.Track(shopID, models.EventSuggestionUsed, map[string]any{
			"serviceId": svc.ID,
		})
	}

	return record, message, nil
}
