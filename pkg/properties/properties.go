package properties

import (
	"github.com/archboard/archboard/pkg/types"
)

// Defaults returns the default property list for a component kind. The
// returned slice is a fresh copy on every call; callers own it and may
// mutate values freely. An unrecognized kind gets the minimal name and
// description pair.
//
// This table is the single canonical definition of which properties exist
// per component kind. The serializer, the palette drop handler, and the
// deserializer all resolve property shapes through it.
func Defaults(kind types.NodeKind) []types.Property {
	base := []types.Property{
		{ID: "name", Name: "Name", Type: types.PropertyString, Value: types.StringValue(displayName(kind)), Required: true},
		{ID: "description", Name: "Description", Type: types.PropertyTextarea, Value: types.StringValue("")},
	}

	var extra []types.Property
	switch kind {
	case types.KindService:
		extra = []types.Property{
			{ID: "instanceCount", Name: "Instances", Type: types.PropertySlider, Value: types.NumberValue(2), Min: 1, Max: 20, Step: 1},
			{ID: "cpu", Name: "CPU (cores)", Type: types.PropertyNumber, Value: types.NumberValue(1), Min: 0.25, Max: 32, Step: 0.25},
			{ID: "memory", Name: "Memory (MB)", Type: types.PropertyNumber, Value: types.NumberValue(512), Min: 128, Max: 65536, Step: 128},
			{ID: "requestRate", Name: "Request Rate (req/s)", Type: types.PropertyNumber, Value: types.NumberValue(100), Min: 0, Max: 100000, Step: 10},
			{ID: "latency", Name: "Latency (ms)", Type: types.PropertyNumber, Value: types.NumberValue(50), Min: 0, Max: 10000, Step: 1},
			{ID: "errorRate", Name: "Error Rate (%)", Type: types.PropertySlider, Value: types.NumberValue(0.5), Min: 0, Max: 100, Step: 0.1},
		}
	case types.KindDatabase:
		extra = []types.Property{
			{ID: "engine", Name: "Engine", Type: types.PropertySelect, Value: types.StringValue("postgresql"), Options: []string{"postgresql", "mysql", "mongodb", "cassandra", "dynamodb"}},
			{ID: "readLatency", Name: "Read Latency (ms)", Type: types.PropertyNumber, Value: types.NumberValue(5), Min: 0, Max: 1000, Step: 1},
			{ID: "writeLatency", Name: "Write Latency (ms)", Type: types.PropertyNumber, Value: types.NumberValue(10), Min: 0, Max: 1000, Step: 1},
			{ID: "maxConnections", Name: "Max Connections", Type: types.PropertyNumber, Value: types.NumberValue(100), Min: 1, Max: 10000, Step: 1},
			{ID: "storage", Name: "Storage (GB)", Type: types.PropertyNumber, Value: types.NumberValue(100), Min: 1, Max: 100000, Step: 1},
		}
	case types.KindMessageQueue:
		extra = []types.Property{
			{ID: "broker", Name: "Broker", Type: types.PropertySelect, Value: types.StringValue("kafka"), Options: []string{"kafka", "rabbitmq", "sqs", "nats", "redis-streams"}},
			{ID: "throughput", Name: "Throughput (msg/s)", Type: types.PropertyNumber, Value: types.NumberValue(1000), Min: 0, Max: 1000000, Step: 100},
			{ID: "latency", Name: "Latency (ms)", Type: types.PropertyNumber, Value: types.NumberValue(10), Min: 0, Max: 10000, Step: 1},
			{ID: "retention", Name: "Retention (hours)", Type: types.PropertyNumber, Value: types.NumberValue(72), Min: 1, Max: 8760, Step: 1},
		}
	case types.KindLoadBalancer:
		extra = []types.Property{
			{ID: "algorithm", Name: "Algorithm", Type: types.PropertySelect, Value: types.StringValue("round-robin"), Options: []string{"round-robin", "least-connections", "ip-hash", "weighted"}},
			{ID: "healthCheckInterval", Name: "Health Check Interval (s)", Type: types.PropertyNumber, Value: types.NumberValue(30), Min: 1, Max: 3600, Step: 1},
			{ID: "maxConnections", Name: "Max Connections", Type: types.PropertyNumber, Value: types.NumberValue(10000), Min: 1, Max: 1000000, Step: 100},
		}
	case types.KindCache:
		extra = []types.Property{
			{ID: "engine", Name: "Engine", Type: types.PropertySelect, Value: types.StringValue("redis"), Options: []string{"redis", "memcached", "hazelcast"}},
			{ID: "capacity", Name: "Capacity (MB)", Type: types.PropertyNumber, Value: types.NumberValue(1024), Min: 16, Max: 1048576, Step: 16},
			{ID: "hitRate", Name: "Hit Rate (%)", Type: types.PropertySlider, Value: types.NumberValue(90), Min: 0, Max: 100, Step: 1},
			{ID: "evictionPolicy", Name: "Eviction Policy", Type: types.PropertySelect, Value: types.StringValue("lru"), Options: []string{"lru", "lfu", "ttl", "random"}},
		}
	case types.KindAPIGateway:
		extra = []types.Property{
			{ID: "rateLimit", Name: "Rate Limit (req/s)", Type: types.PropertyNumber, Value: types.NumberValue(1000), Min: 1, Max: 1000000, Step: 10},
			{ID: "authScheme", Name: "Auth Scheme", Type: types.PropertySelect, Value: types.StringValue("jwt"), Options: []string{"jwt", "api-key", "oauth2", "none"}},
			{ID: "rateLimitEnabled", Name: "Rate Limiting", Type: types.PropertyBoolean, Value: types.BoolValue(true)},
		}
	}

	return append(base, extra...)
}

// ToRecord reduces a property list to a flat map keyed by property id.
// Properties with an empty id fall back to their name as the key.
func ToRecord(props []types.Property) map[string]any {
	record := make(map[string]any, len(props))
	for _, p := range props {
		key := p.ID
		if key == "" {
			key = p.Name
		}
		record[key] = p.Value.Any()
	}
	return record
}

// FromRecord overlays values from a flat record onto the default property
// list for the given kind. Keys with no matching default property are
// ignored; defaults with no matching key keep their default value. This is
// how a node loaded from a stored document regains its editable shape.
func FromRecord(kind types.NodeKind, record map[string]any) []types.Property {
	props := Defaults(kind)
	if record == nil {
		return props
	}
	for i := range props {
		if raw, ok := record[props[i].ID]; ok {
			props[i].Value = types.ValueOf(raw)
		}
	}
	return props
}

func displayName(kind types.NodeKind) string {
	switch kind {
	case types.KindService:
		return "Service"
	case types.KindDatabase:
		return "Database"
	case types.KindMessageQueue:
		return "Message Queue"
	case types.KindLoadBalancer:
		return "Load Balancer"
	case types.KindCache:
		return "Cache"
	case types.KindAPIGateway:
		return "API Gateway"
	default:
		return "Component"
	}
}
