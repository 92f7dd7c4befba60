package shared

// IDGenerator mints identifiers for rows the engine writes (alerts, audit
// entries). The implementation lives in infrastructure/service.
type IDGenerator interface {
	// NewID returns a new unique identifier.
	NewID() string
}
