package chat

import (
	"testing"

	"tallerchat/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		message string
		state   string
		want    Intent
	}{
		{"greeting", "Hola", models.StateIdle, IntentGreeting},
		{"greeting long", "buenos días, cómo va todo", models.StateIdle, IntentGreeting},
		{"help", "ayuda", models.StateIdle, IntentHelp},
		{"help question", "qué puedes hacer", models.StateIdle, IntentHelp},

		{"cancel exact", "cancelar", models.StateAwaitingConfirmation, IntentCancel},
		{"cancel no", "no", models.StateAwaitingConfirmation, IntentCancel},
		// Cancel words embedded in a sentence are not cancellations.
		{"no embedded", "no pude venir ayer", models.StateIdle, IntentQueryDate},

		{"confirm in confirmation state", "sí", models.StateAwaitingConfirmation, IntentConfirm},
		{"confirm dale", "dale", models.StateAwaitingConfirmation, IntentConfirm},
		// Confirmation words mean nothing outside the confirmation state.
		{"confirm while idle", "sí", models.StateIdle, IntentRegisterService},

		{"query today", "servicios de hoy", models.StateIdle, IntentQueryToday},
		{"query today summary", "resumen del día", models.StateIdle, IntentQueryToday},
		{"query range", "desde 10/12 hasta 15/12", models.StateIdle, IntentQueryDateRange},
		{"query range entre", "entre 01/11 y 15/11", models.StateIdle, IntentQueryDateRange},
		{"query yesterday", "ventas de ayer", models.StateIdle, IntentQueryDate},
		{"query bare date", "15/12", models.StateIdle, IntentQueryDate},
		// A dotted price is not a date.
		{"price is not a date", "$35.000", models.StateAwaitingCorrection, IntentRegisterService},
		{"query date with keyword", "servicios del 10/12", models.StateIdle, IntentQueryDate},

		{"search plate", "Buscar ABC123", models.StateIdle, IntentSearchPlate},
		{"search plate historial", "historial abc-123", models.StateIdle, IntentSearchPlate},
		{"search plate cuando vino", "cuando vino XYZ 789", models.StateIdle, IntentSearchPlate},
		{"search client", "servicios de Juan", models.StateIdle, IntentSearchClient},
		{"search client historial", "historial de Marta", models.StateIdle, IntentSearchClient},

		{"statistics", "total vendido hoy", models.StateIdle, IntentStatistics},
		{"statistics popular", "servicio más popular", models.StateIdle, IntentStatistics},

		{"registration", "Lavado motor $50000 ABC123 Juan", models.StateIdle, IntentRegisterService},
		{"registration fallback", "algo que no entiendo", models.StateIdle, IntentRegisterService},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.message, tc.state))
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// A greeting that also mentions services stays a greeting; earlier checks
	// win.
	assert.Equal(t, IntentGreeting, Classify("hola, servicios de hoy", models.StateIdle))

	// A plate shape inside a client-style search is never treated as a
	// client name.
	assert.NotEqual(t, IntentSearchClient, Classify("servicios de ABC123", models.StateIdle))
}
