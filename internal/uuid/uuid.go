// Package uuid hands out action and lock identifiers behind an interface so
// tests and seeded runs can make them predictable.
package uuid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_generator.go -package=mockuuid -source=uuid.go

// Generator is an interface for generating UUIDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// SequenceGenerator returns prefix-1, prefix-2, ... for replayable runs
type SequenceGenerator struct {
	prefix string
	next   atomic.Int64
}

// NewSequenceGenerator creates a generator counting from 1
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// New returns the next identifier in the sequence
func (g *SequenceGenerator) New() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1))
}
