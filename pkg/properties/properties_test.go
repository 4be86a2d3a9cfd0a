package properties

import (
	"testing"

	"github.com/archboard/archboard/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsPerKind(t *testing.T) {
	tests := []struct {
		kind     types.NodeKind
		ids      []string
		nameProp string
	}{
		{
			kind:     types.KindService,
			ids:      []string{"name", "description", "instanceCount", "cpu", "memory", "requestRate", "latency", "errorRate"},
			nameProp: "Service",
		},
		{
			kind:     types.KindDatabase,
			ids:      []string{"name", "description", "engine", "readLatency", "writeLatency", "maxConnections", "storage"},
			nameProp: "Database",
		},
		{
			kind:     types.KindMessageQueue,
			ids:      []string{"name", "description", "broker", "throughput", "latency", "retention"},
			nameProp: "Message Queue",
		},
		{
			kind:     types.KindLoadBalancer,
			ids:      []string{"name", "description", "algorithm", "healthCheckInterval", "maxConnections"},
			nameProp: "Load Balancer",
		},
		{
			kind:     types.KindCache,
			ids:      []string{"name", "description", "engine", "capacity", "hitRate", "evictionPolicy"},
			nameProp: "Cache",
		},
		{
			kind:     types.KindAPIGateway,
			ids:      []string{"name", "description", "rateLimit", "authScheme", "rateLimitEnabled"},
			nameProp: "API Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			props := Defaults(tt.kind)
			require.Len(t, props, len(tt.ids))
			for i, p := range props {
				assert.Equal(t, tt.ids[i], p.ID)
			}
			assert.Equal(t, tt.nameProp, props[0].Value.Str)
			assert.True(t, props[0].Required)
		})
	}
}

func TestDefaultsUnknownKind(t *testing.T) {
	props := Defaults(types.NodeKind("teapot"))
	require.Len(t, props, 2)
	assert.Equal(t, "name", props[0].ID)
	assert.Equal(t, "Component", props[0].Value.Str)
	assert.Equal(t, "description", props[1].ID)
}

// TestDefaultsReturnsFreshCopy guards against shared backing arrays: mutating
// one returned slice must not leak into the next call
func TestDefaultsReturnsFreshCopy(t *testing.T) {
	first := Defaults(types.KindCache)
	first[0].Value = types.StringValue("mutated")

	second := Defaults(types.KindCache)
	assert.Equal(t, "Cache", second[0].Value.Str)
}

func TestToRecord(t *testing.T) {
	props := []types.Property{
		{ID: "name", Name: "Name", Value: types.StringValue("orders-db")},
		{ID: "storage", Name: "Storage (GB)", Value: types.NumberValue(250)},
		{ID: "", Name: "Legacy", Value: types.BoolValue(true)},
	}

	record := ToRecord(props)
	assert.Equal(t, map[string]any{
		"name":    "orders-db",
		"storage": float64(250),
		"Legacy":  true,
	}, record)
}

func TestFromRecordOverlaysDefaults(t *testing.T) {
	record := map[string]any{
		"name":    "sessions",
		"engine":  "memcached",
		"hitRate": float64(75),
		"bogus":   "ignored",
	}

	props := FromRecord(types.KindCache, record)
	byID := make(map[string]types.Property, len(props))
	for _, p := range props {
		byID[p.ID] = p
	}

	assert.Equal(t, "sessions", byID["name"].Value.Str)
	assert.Equal(t, "memcached", byID["engine"].Value.Str)
	assert.Equal(t, float64(75), byID["hitRate"].Value.Num)
	// untouched key keeps its default
	assert.Equal(t, "lru", byID["evictionPolicy"].Value.Str)
	_, exists := byID["bogus"]
	assert.False(t, exists)
}

func TestFromRecordNilRecord(t *testing.T) {
	assert.Equal(t, Defaults(types.KindService), FromRecord(types.KindService, nil))
}

// FromRecord then ToRecord should reproduce the stored record for every key
// that names a real property
func TestRecordRoundTrip(t *testing.T) {
	record := ToRecord(Defaults(types.KindDatabase))
	record["name"] = "billing"
	record["maxConnections"] = float64(500)

	roundTripped := ToRecord(FromRecord(types.KindDatabase, record))
	assert.Equal(t, record, roundTripped)
}
