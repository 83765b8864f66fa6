package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceNo(t *testing.T) {
	assert.Equal(t, "BYD-REF-001", referenceNo("BYD - Atto 3", 1))
	assert.Equal(t, "TAT-REF-042", referenceNo("Tata - Nexon EV", 42))
	assert.Equal(t, "MG-REF-007", referenceNo("MG - ZS EV", 7))
	assert.Equal(t, "KIA-REF-113", referenceNo("Kia - EV6", 113))
}

func TestParseCapacity(t *testing.T) {
	got := parseCapacity("30.2")
	require.NotNil(t, got)
	assert.Equal(t, 30.2, *got)

	got = parseCapacity(" 50 ")
	require.NotNil(t, got)
	assert.Equal(t, 50.0, *got)

	assert.Nil(t, parseCapacity("TBA"))
	assert.Nil(t, parseCapacity(""))
}

func TestCatalogEntriesWellFormed(t *testing.T) {
	require.NotEmpty(t, catalog)

	for _, entry := range catalog {
		assert.NotEmpty(t, entry.Name)
		assert.NotEmpty(t, entry.CapacityKWh)
	}
}
