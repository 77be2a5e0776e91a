package fetch

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"

	"streampick/internal/services/ytdlp"
)

// ErrPoolClosed is returned by Acquire after Close has been called.
var ErrPoolClosed = errors.New("client pool closed")

// Pool hands out reusable provider clients to workers. Clients are created
// lazily, affined to one holder at a time, and reused across calls until the
// pool is shut down. A weighted semaphore bounds how many clients exist
// concurrently.
type Pool struct {
	factory func() ytdlp.Client
	slots   *semaphore.Weighted

	mu     sync.Mutex
	idle   []ytdlp.Client
	closed bool
}

// NewPool constructs a pool bounded at size clients built by factory.
func NewPool(size int, factory func() ytdlp.Client) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		factory: factory,
		slots:   semaphore.NewWeighted(int64(size)),
	}
}

// Acquire returns a client for exclusive use by the caller. It blocks until a
// slot is free or ctx is done. Callers must pass the client to Release when
// finished with the current call.
func (p *Pool) Acquire(ctx context.Context) (ytdlp.Client, error) {
	if err := p.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.slots.Release(1)
		return nil, ErrPoolClosed
	}
	if n := len(p.idle); n > 0 {
		client := p.idle[n-1]
		p.idle = p.idle[:n-1]
		return client, nil
	}
	return p.factory(), nil
}

// Release returns a client to the pool for reuse. After shutdown the client
// is closed instead of being retained.
func (p *Pool) Release(client ytdlp.Client) {
	if client == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		_ = client.Close()
		p.slots.Release(1)
		return
	}
	p.idle = append(p.idle, client)
	p.mu.Unlock()
	p.slots.Release(1)
}

// Close drains the pool and closes every idle client. Safe to call more than
// once; clients still held by workers are closed when released.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	idle := p.idle
	p.idle = nil
	p.mu.Unlock()

	var firstErr error
	for _, client := range idle {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
