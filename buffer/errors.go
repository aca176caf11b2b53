package buffer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfBounds    = errors.New("position out of bounds")
	ErrNoMatch        = errors.New("no match")
	ErrAmbiguousPair  = errors.New("ambiguous pair")
	ErrEmptyHistory   = errors.New("empty history")
	ErrEmptyQuery     = errors.New("empty query")
	ErrNoActiveSearch = errors.New("no active search")
	ErrIO             = errors.New("i/o error")
)

// AmbiguousPairError is returned when more than one pair kind could be meant.
// Retry the operation with one of Choices as an explicit kind.
type AmbiguousPairError struct {
	Choices []Pair
}

func (e *AmbiguousPairError) Error() string {
	kinds := make([]string, len(e.Choices))
	for i, p := range e.Choices {
		kinds[i] = p.String()
	}
	return fmt.Sprintf("ambiguous pair: choose one of %s", strings.Join(kinds, " "))
}

func (e *AmbiguousPairError) Is(target error) bool {
	return target == ErrAmbiguousPair
}

func outOfBounds(p Position) error {
	return fmt.Errorf("%w: %s", ErrOutOfBounds, p)
}
