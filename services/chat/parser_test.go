package chat

import (
	"testing"

	"tallerchat/models"

	"github.com/stretchr/testify/assert"
)

func testCatalog() []models.ServiceDefinition {
	return []models.ServiceDefinition{
		{Name: "Lavado completo", Price: 35000},
		{Name: "Cambio aceite", Price: 50000},
		{Name: "Lavado motor", Price: 40000},
	}
}

func TestParseNaturalFullMessage(t *testing.T) {
	p := NewParser(testCatalog())

	parsed := p.Parse("Lavado completo $35.000 ABC123 Juan")

	assert.Equal(t, "Lavado completo", parsed.ServiceName)
	assert.Equal(t, int64(35000), parsed.Price)
	assert.Equal(t, "ABC123", parsed.Plate)
	assert.Equal(t, "Juan", parsed.ClientName)
	assert.True(t, parsed.Complete)
}

func TestParsePriceVariants(t *testing.T) {
	cases := []struct {
		message string
		want    int64
	}{
		{"Lavado completo $35k", 35000},
		{"Lavado completo $35 mil", 35000},
		{"Lavado completo $35.000", 35000},
		{"Lavado completo $35,000", 35000},
		{"Lavado completo $1.500", 1500},
		{"Lavado completo $500", 500},
		// Bare numbers are never prices.
		{"Lavado completo 35000", 0},
	}
	p := NewParser(testCatalog())
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Parse(tc.message).Price)
		})
	}
}

func TestParseReturnsCanonicalCatalogName(t *testing.T) {
	p := NewParser(testCatalog())

	parsed := p.Parse("hicimos un LAVADO COMPLETO por $20.000")

	assert.Equal(t, "Lavado completo", parsed.ServiceName)
}

func TestParseCatalogOrderBreaksTies(t *testing.T) {
	// "Lavado completo" precedes "Lavado motor" in the catalog; a message
	// containing both resolves to the first.
	p := NewParser(testCatalog())

	parsed := p.Parse("lavado completo y lavado motor $30.000")

	assert.Equal(t, "Lavado completo", parsed.ServiceName)
}

func TestParseFallsBackToLeadingWords(t *testing.T) {
	p := NewParser(nil)

	parsed := p.Parse("Encerado general $15.000")

	assert.Equal(t, "Encerado general", parsed.ServiceName)
	assert.Equal(t, int64(15000), parsed.Price)
	assert.True(t, parsed.Complete)
}

func TestParseStructuredMessage(t *testing.T) {
	p := NewParser(testCatalog())

	parsed := p.Parse("Cliente: ana maría | Servicio: Cambio aceite | Precio: $50.000 | Placa: abc-123")

	assert.Equal(t, "Ana María", parsed.ClientName)
	assert.Equal(t, "Cambio aceite", parsed.ServiceName)
	assert.Equal(t, int64(50000), parsed.Price)
	assert.Equal(t, "ABC123", parsed.Plate)
	assert.True(t, parsed.Complete)
}

func TestParseStructuredSkipsNaturalExtraction(t *testing.T) {
	// The trailing words would read as a client name on the natural path;
	// structured messages only honor labeled fields.
	p := NewParser(testCatalog())

	parsed := p.Parse("Servicio: Cambio aceite | Precio: 50000 Pedro Gómez")

	assert.Equal(t, "Cambio aceite", parsed.ServiceName)
	assert.Empty(t, parsed.ClientName)
}

func TestParseIncompleteMessage(t *testing.T) {
	p := NewParser(testCatalog())

	parsed := p.Parse("Lavado completo ABC123")

	assert.Equal(t, "Lavado completo", parsed.ServiceName)
	assert.Equal(t, "ABC123", parsed.Plate)
	assert.Zero(t, parsed.Price)
	assert.False(t, parsed.Complete)
}

func TestExtractClientNameTakesTrailingWords(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"Lavado completo $35.000 ABC123 Juan", "Juan"},
		{"Lavado completo $35.000 ABC123 Juan Pérez", "Juan Pérez"},
		{"Cambio aceite $50.000 para la señora Marta", "Señora Marta"},
		{"Lavado completo $35.000", ""},
	}
	p := NewParser(testCatalog())
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Parse(tc.message).ClientName)
		})
	}
}

func TestNormalizePlate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ABC-123", "ABC123"},
		{"abc 123", "ABC123"},
		{"ABC123", "ABC123"},
	}
	for _, tc := range cases {
		got := NormalizePlate(tc.in)
		assert.Equal(t, tc.want, got)
		// Idempotent.
		assert.Equal(t, got, NormalizePlate(got))
	}
}

func TestExtractPlate(t *testing.T) {
	assert.Equal(t, "XYZ789", ExtractPlate("vino el de la xyz-789 otra vez"))
	assert.Empty(t, ExtractPlate("sin placa en este mensaje"))
}
