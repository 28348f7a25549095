package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogRepo "tallerchat/database/repository/catalog"
	registryRepo "tallerchat/database/repository/registry"
	"tallerchat/models"

	"go.uber.org/zap"
)

// internalErrorMessage is all a user ever sees of an unexpected failure.
const internalErrorMessage = "Error interno"

// anonymousClientName is used when a registration carries no client name.
const anonymousClientName = "Cliente anónimo"

// RegistrationResult reports the outcome of one registration attempt.
// Validation messages in Errors are safe to show the user verbatim.
type RegistrationResult struct {
	Success bool
	Record  *models.ServiceRecord
	Errors  []string
}

// RegistrationService validates extracted data against the catalog and
// performs the atomic registration write.
type RegistrationService interface {
	Register(ctx context.Context, shopID string, data models.ParsedService) RegistrationResult
}

// DefaultRegistrationService implements RegistrationService.
type DefaultRegistrationService struct {
	Catalog   catalogRepo.CatalogRepository
	Registry  registryRepo.RegistryRepository
	Analytics AnalyticsSink
	Logger    *zap.Logger
	Now       func() time.Time
}

func (s *DefaultRegistrationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register runs the registration. The catalog precondition is hard: an
// unknown service name is rejected, never auto-created. Everything behind it
// (client, vehicle, record, usage counter) commits or rolls back as one unit.
func (s *DefaultRegistrationService) Register(ctx context.Context, shopID string, data models.ParsedService) RegistrationResult {
	if _, err := s.Catalog.FindByName(ctx, shopID, data.ServiceName); err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			msg := fmt.Sprintf(
				"El servicio '%s' no existe en el catálogo. Por favor, créalo primero en /services",
				data.ServiceName)
			return RegistrationResult{Success: false, Errors: []string{msg}}
		}
		s.Logger.Error("registrar: catalog lookup failed", zap.Error(err))
		return RegistrationResult{Success: false, Errors: []string{internalErrorMessage}}
	}

	clientName := data.ClientName
	if clientName == "" {
		clientName = anonymousClientName
	}

	record, err := s.Registry.RegisterVisit(ctx, shopID, data, clientName, s.now())
	if err != nil {
		s.Logger.Error("registrar: registration transaction failed",
			zap.String("shopId", shopID),
			zap.String("serviceName", data.ServiceName),
			zap.Error(err))
		return RegistrationResult{Success: false, Errors: []string{internalErrorMessage}}
	}

	if s.Analytics != nil {
		s.Analytics.Track(shopID, models.EventServiceRegistered, map[string]any{
			"serviceRecordId": record.ID,
			"serviceName":     record.ServiceName,
			"price":           record.Price,
			"hasVehicle":      record.VehicleID != "",
		})
	}

	return RegistrationResult{Success: true, Record: record}
}
