package book

import "github.com/google/uuid"

// IdentifierSource mints book identifiers. Injecting it keeps identifier
// generation out of the model, so tests can supply a deterministic source.
type IdentifierSource interface {
	NewIdentifier() string
}

// RandomIdentifiers returns the default source, which mints a random
// RFC 4122 version 4 UUID per book.
func RandomIdentifiers() IdentifierSource {
	return randomSource{}
}

type randomSource struct{}

func (randomSource) NewIdentifier() string {
	return uuid.NewString()
}

// FixedIdentifiers returns a source that always yields id.
func FixedIdentifiers(id string) IdentifierSource {
	return fixedSource(id)
}

type fixedSource string

func (s fixedSource) NewIdentifier() string {
	return string(s)
}
