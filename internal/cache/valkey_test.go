package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServicesListKey(t *testing.T) {
	assert.Equal(t, "services:list:all:12", servicesListKey("", 12))
	assert.Equal(t, "services:list:Baby Care:5", servicesListKey("Baby Care", 5))
}

func TestServicesListKey_DistinguishesPageSize(t *testing.T) {
	// A 12-item page cached for the default pageSize must not be served to a
	// pageSize=5 request
	assert.NotEqual(t, servicesListKey("", 12), servicesListKey("", 5))
	assert.NotEqual(t, servicesListKey("Baby Care", 12), servicesListKey("Baby Care", 5))
}

func TestServicesListKey_MatchesInvalidationPattern(t *testing.T) {
	// InvalidateServicesList scans "services:list:*"; every key variant must
	// fall under that prefix
	for _, key := range []string{
		servicesListKey("", 12),
		servicesListKey("", 5),
		servicesListKey("Pet Care", 12),
	} {
		assert.True(t, strings.HasPrefix(key, "services:list:"), key)
	}
}
