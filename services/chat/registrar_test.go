package chat

import (
	"context"
	"testing"
	"time"

	"tallerchat/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRegisterRejectsUnknownService(t *testing.T) {
	svc := &DefaultRegistrationService{
		Catalog:  &mockCatalog{services: testCatalog()},
		Registry: &mockRegistry{},
		Logger:   zap.NewNop(),
		Now:      fixedNow,
	}

	result := svc.Register(context.Background(), "shop-1", models.ParsedService{
		ServiceName: "Encerado",
		Price:       20000,
	})

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t,
		"El servicio 'Encerado' no existe en el catálogo. Por favor, créalo primero en /services",
		result.Errors[0])
}

func TestRegisterSuccess(t *testing.T) {
	sink := &recordingSink{}
	registry := &mockRegistry{
		RegisterVisitFn: func(_ context.Context, shopID string, data models.ParsedService, clientName string, now time.Time) (*models.ServiceRecord, error) {
			return &models.ServiceRecord{
				ID:           "rec-1",
				ShopID:       shopID,
				ServiceName:  data.ServiceName,
				Price:        data.Price,
				ClientName:   clientName,
				VehicleID:    "veh-1",
				VehiclePlate: data.Plate,
				ServiceDate:  now,
			}, nil
		},
	}
	svc := &DefaultRegistrationService{
		Catalog:   &mockCatalog{services: testCatalog()},
		Registry:  registry,
		Analytics: sink,
		Logger:    zap.NewNop(),
		Now:       fixedNow,
	}

	result := svc.Register(context.Background(), "shop-1", models.ParsedService{
		ServiceName: "Lavado completo",
		Price:       35000,
		Plate:       "ABC123",
		ClientName:  "Juan",
	})

	require.True(t, result.Success)
	require.NotNil(t, result.Record)
	assert.Equal(t, "rec-1", result.Record.ID)
	assert.Equal(t, "Juan", result.Record.ClientName)

	require.Len(t, sink.events, 1)
	assert.Equal(t, models.EventServiceRegistered, sink.events[0].EventType)
	assert.Equal(t, "rec-1", sink.events[0].Metadata["serviceRecordId"])
	assert.Equal(t, true, sink.events[0].Metadata["hasVehicle"])
}

func TestRegisterDefaultsAnonymousClient(t *testing.T) {
	var gotName string
	registry := &mockRegistry{
		RegisterVisitFn: func(_ context.Context, _ string, data models.ParsedService, clientName string, now time.Time) (*models.ServiceRecord, error) {
			gotName = clientName
			return &models.ServiceRecord{ID: "rec-1", ServiceName: data.ServiceName, Price: data.Price, ClientName: clientName}, nil
		},
	}
	svc := &DefaultRegistrationService{
		Catalog:  &mockCatalog{services: testCatalog()},
		Registry: registry,
		Logger:   zap.NewNop(),
		Now:      fixedNow,
	}

	result := svc.Register(context.Background(), "shop-1", models.ParsedService{
		ServiceName: "Lavado completo",
		Price:       35000,
	})

	require.True(t, result.Success)
	assert.Equal(t, anonymousClientName, gotName)
}

func TestRegisterTransactionFailureIsInternalError(t *testing.T) {
	registry := &mockRegistry{
		RegisterVisitFn: func(_ context.Context, _ string, _ models.ParsedService, _ string, _ time.Time) (*models.ServiceRecord, error) {
			return nil, assert.AnError
		},
	}
	svc := &DefaultRegistrationService{
		Catalog:  &mockCatalog{services: testCatalog()},
		Registry: registry,
		Logger:   zap.NewNop(),
		Now:      fixedNow,
	}

	result := svc.Register(context.Background(), "shop-1", models.ParsedService{
		ServiceName: "Lavado completo",
		Price:       35000,
	})

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, internalErrorMessage, result.Errors[0])
}
