package naming

import (
	"errors"
	"fmt"
	"sync"
)

// ErrCollision is returned when two inputs would be renamed to one output.
var ErrCollision = errors.New("output path already claimed")

// CollisionResolver tracks output paths claimed by input files within one
// run. Frame sequences cannot be disambiguated by suffixing a name, so a
// second claim on a path is an error rather than a renamed duplicate. All
// methods are goroutine-safe.
type CollisionResolver struct {
	mu     sync.Mutex
	owners map[string]string // output path -> input path that owns it
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{owners: make(map[string]string)}
}

// Claim records that input will end up at output. Claiming the same pair
// twice is allowed; claiming an output owned by another input fails with
// ErrCollision.
func (cr *CollisionResolver) Claim(input, output string) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, exists := cr.owners[output]
	if exists && owner != input {
		return fmt.Errorf("%s -> %s: %w by %s", input, output, ErrCollision, owner)
	}
	cr.owners[output] = input
	return nil
}

// Owner returns the input that claimed output.
func (cr *CollisionResolver) Owner(output string) (string, bool) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	owner, ok := cr.owners[output]
	return owner, ok
}
