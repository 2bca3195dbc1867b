package mul

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"sort"
	"sync"

	"github.com/agbru/bigntt/internal/ubig"
)

// Registry maps backend names to Multipliers. The bench command runs every
// registered backend on the same operands.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Multiplier
}

// NewRegistry returns a registry holding the built-in backends:
//
//	ntt          default engine (native below the prime threshold)
//	ntt-native   engine preferring the native modulus at every size
//	ntt-solinas  engine preferring the Solinas modulus at every size
//	big          math/big
func NewRegistry() *Registry {
	r := &Registry{backends: make(map[string]Multiplier)}
	r.Register("ntt", defaultEngine)
	r.Register("ntt-native", mustEngine(math.MaxInt))
	r.Register("ntt-solinas", mustEngine(0))
	r.Register("big", Reference{})
	return r
}

func mustEngine(threshold int) *Engine {
	cfg := DefaultConfig()
	cfg.PrimeThresholdBits = threshold
	e, err := NewEngine(cfg)
	if err != nil {
		panic(fmt.Sprintf("mul: invalid built-in configuration: %v", err))
	}
	return e
}

// Register adds or replaces a backend.
func (r *Registry) Register(name string, m Multiplier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[name] = m
}

// Get returns the named backend.
func (r *Registry) Get(name string) (Multiplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown multiplier backend: %s", name)
	}
	return m, nil
}

// List returns the backend names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := &Registry{backends: make(map[string]Multiplier, len(r.backends))}
	for name, m := range r.backends {
		c.backends[name] = m
	}
	return c
}

var globalRegistry = NewRegistry()

// Backends returns the process-wide registry.
func Backends() *Registry { return globalRegistry }

// RegisterBackend adds a backend to the process-wide registry.
func RegisterBackend(name string, m Multiplier) { globalRegistry.Register(name, m) }

// Reference multiplies with math/big. It is the oracle for tests and the
// baseline of the bench command.
type Reference struct{}

func (Reference) Multiply(ctx context.Context, a, b *ubig.UBig) (*ubig.UBig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ubig.FromBig(new(big.Int).Mul(a.Int(), b.Int()))
}

func (r Reference) Square(ctx context.Context, a *ubig.UBig) (*ubig.UBig, error) {
	return r.Multiply(ctx, a, a)
}
