package utils

import "github.com/google/uuid"

// UUIDGenerator issues the string ids used for outbox job rows. Version 7
// ids are time-ordered, so sorting by id roughly follows insertion order.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7 string. If the random source fails it falls
// back to a v4 id rather than erroring; id generation must not fail an
// enqueue.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
