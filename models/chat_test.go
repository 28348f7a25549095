package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsedServiceMerge(t *testing.T) {
	base := ParsedService{ServiceName: "Lavado completo", Plate: "ABC123"}

	merged := base.Merge(ParsedService{Price: 35000, ClientName: "Juan"})

	assert.Equal(t, "Lavado completo", merged.ServiceName)
	assert.Equal(t, int64(35000), merged.Price)
	assert.Equal(t, "ABC123", merged.Plate)
	assert.Equal(t, "Juan", merged.ClientName)
	assert.True(t, merged.Complete)
}

func TestParsedServiceMergeNewerWins(t *testing.T) {
	base := ParsedService{ServiceName: "Lavado completo", Price: 35000}

	merged := base.Merge(ParsedService{ServiceName: "Cambio aceite"})

	assert.Equal(t, "Cambio aceite", merged.ServiceName)
	assert.Equal(t, int64(35000), merged.Price)
}

func TestParsedServiceMergeEmptyFieldsDoNotOverwrite(t *testing.T) {
	base := ParsedService{ServiceName: "Lavado completo", Price: 35000, ClientName: "Juan"}

	merged := base.Merge(ParsedService{})

	assert.Equal(t, base.ServiceName, merged.ServiceName)
	assert.Equal(t, base.Price, merged.Price)
	assert.Equal(t, base.ClientName, merged.ClientName)
	assert.True(t, merged.Complete)
}

func TestParsedServiceMergeRecomputesCompleteness(t *testing.T) {
	incomplete := ParsedService{ServiceName: "Lavado completo"}
	assert.False(t, incomplete.Merge(ParsedService{}).Complete)
	assert.True(t, incomplete.Merge(ParsedService{Price: 1000}).Complete)
}
