package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeMatchesBothIDForms(t *testing.T) {
	assert.Equal(t, Canonicalize("5"), Canonicalize("00000000-0000-0000-0000-000000000005"))
	assert.Equal(t, Key("5"), Canonicalize("00000000-0000-0000-0000-000000000005"))
	assert.Equal(t, Key("5"), Canonicalize("5"))
}

func TestCanonicalizePassesThroughNonNumericIDs(t *testing.T) {
	assert.Equal(t, Key("new-arrivals"), Canonicalize("new-arrivals"))
	// UUIDs that are not zero-padded short ids stay as-is.
	assert.Equal(t, Key("9f8b4a2c-1d3e-4f50-8a6b-7c9d0e1f2a3b"), Canonicalize("9f8b4a2c-1d3e-4f50-8a6b-7c9d0e1f2a3b"))
}

func TestToUUID(t *testing.T) {
	assert.Equal(t, "00000000-0000-0000-0000-000000000005", ToUUID("5"))
	assert.Equal(t, "00000000-0000-0000-0000-000000000042", ToUUID("42"))
	// Already UUID-shaped ids pass through unchanged.
	assert.Equal(t, "00000000-0000-0000-0000-000000000005", ToUUID("00000000-0000-0000-0000-000000000005"))
}

func TestToUUIDRoundTrip(t *testing.T) {
	for _, id := range []string{"1", "8", "120"} {
		assert.Equal(t, Key(id), Canonicalize(ToUUID(id)))
	}
}

func TestCatalogSeedDataUsesUUIDShapedIDs(t *testing.T) {
	for _, p := range Products() {
		assert.Equal(t, p.ID, ToUUID(p.ID), "product id %s should be UUID-shaped", p.ID)
	}
}
