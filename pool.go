package cvpdf

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// SerializerPool manages a pool of Serializer instances for parallel
// generation. Each browser serializer owns its own Chrome instance.
// Serializers are created lazily on first acquire to avoid startup delay.
type SerializerPool struct {
	engine      Engine
	opts        []Option
	size        int
	serializers []Serializer
	sem         chan Serializer
	mu          sync.Mutex
	created     int
	closed      bool
	newFunc     func(Engine, ...Option) (Serializer, error)
}

// NewSerializerPool creates a pool with capacity for n serializers of engine.
// Serializers are created when acquired, not at pool creation.
func NewSerializerPool(engine Engine, n int, opts ...Option) *SerializerPool {
	if n < 1 {
		n = 1
	}

	return &SerializerPool{
		engine:      engine,
		opts:        opts,
		size:        n,
		serializers: make([]Serializer, 0, n),
		sem:         make(chan Serializer, n),
		newFunc:     New,
	}
}

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("serializer pool is closed")

// Acquire gets a serializer from the pool, creating one if needed.
// Blocks if all serializers are in use.
func (p *SerializerPool) Acquire() (Serializer, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrPoolClosed
	}

	// Try to get an existing serializer (non-blocking)
	select {
	case s, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return s, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create outside the lock
		s, err := p.newFunc(p.engine, p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.serializers = append(p.serializers, s)
		p.mu.Unlock()

		return s, nil
	}
	p.mu.Unlock()

	// All serializers created, wait for one to be released
	s, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return s, nil
}

// Release returns a serializer to the pool. Releasing after Close is a no-op.
// The channel has room for every serializer, so the send under the lock
// never blocks.
func (p *SerializerPool) Release(s Serializer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- s
}

// Close releases all serializer resources.
// Returns an aggregated error if multiple serializers fail to close.
func (p *SerializerPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	serializers := p.serializers
	p.mu.Unlock()

	var errs []error
	for _, s := range serializers {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *SerializerPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
