/*
Package properties defines the default property sets per component kind and
the conversion between property lists and flat transport records.

Every diagram node carries an ordered list of typed properties. This package
is the single source of truth for which properties exist for each component
kind; the palette drop path, the serializer, and the deserializer all resolve
property shapes through Defaults rather than holding their own copies.

# Property Tables

  - generic-service: instances, cpu, memory, request rate, latency, error rate
  - database: engine, read/write latency, max connections, storage
  - message-queue: broker, throughput, latency, retention
  - load-balancer: algorithm, health check interval, max connections
  - cache: engine, capacity, hit rate, eviction policy
  - api-gateway: rate limit, auth scheme, rate limiting toggle

Every kind additionally carries name and description. Unknown kinds get only
the name and description pair.

# Conversions

ToRecord flattens a property list to {id: value} for transport. FromRecord
overlays stored values onto the kind's defaults, so loading a document never
loses properties added to the table after the document was saved.
*/
package properties
