// Package service holds small infrastructure adapters: ID generation and the
// alert notifier that persists and logs KPI alerts.
package service

import (
	"github.com/google/uuid"
)

// UUIDGenerator implements shared.IDGenerator with random UUIDs.
type UUIDGenerator struct{}

// NewIDGenerator creates a UUID-based ID generator.
func NewIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a new random UUID in string form.
func (g *UUIDGenerator) NewID() string {
	return uuid.New().String()
}
