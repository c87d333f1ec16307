// Package idgen provides ID generation utilities
package idgen

import (
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/knight-api/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator generates random version 4 UUIDs
type UUIDGenerator struct{}

// NewUUID creates a new UUID generator
func NewUUID() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate creates a new UUID
func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// SequentialGenerator generates predictable UUIDs for testing. The n-th id
// carries n in its trailing bytes.
type SequentialGenerator struct {
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential() *SequentialGenerator {
	return &SequentialGenerator{}
}

// Generate creates the next sequential UUID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)

	var id uuid.UUID
	for i := 0; i < 8; i++ {
		id[15-i] = byte(n >> (8 * i))
	}
	return id.String()
}

// IsValid reports whether id is a well formed UUID
func IsValid(id string) bool {
	return uuid.Validate(id) == nil
}
