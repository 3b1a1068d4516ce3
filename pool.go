package gremlex

import (
	"context"
	"sync"
	"time"
)

// Pool manages a fixed set of persistent Workers plus a bounded number of
// transient overflow Workers created on demand under load. Checkout blocks
// until a worker is idle or the context/timeout expires.
type Pool struct {
	cfg *Config

	idle chan *Worker

	mu       sync.Mutex
	overflow int
	closed   bool
}

// NewPool dials cfg.PoolSize persistent workers and returns a Pool ready to
// serve Query calls. MaxOverflow additional transient workers may be created
// under load and are closed when checked back in.
func NewPool(cfg *Config) (*Pool, error) {
	p := &Pool{cfg: cfg, idle: make(chan *Worker, cfg.PoolSize+cfg.MaxOverflow)}
	for i := 0; i < cfg.PoolSize; i++ {
		w, err := NewWorker(cfg)
		if err != nil {
			p.Close()
			return nil, err
		}
		p.idle <- w
	}
	return p, nil
}

// checkout returns an idle persistent worker if one is available, or spins
// up a transient overflow worker if the pool has spare overflow capacity, or
// blocks until a persistent worker is checked back in or ctx is done.
func (p *Pool) checkout(ctx context.Context) (*Worker, bool, error) {
	select {
	case w, ok := <-p.idle:
		if !ok {
			return nil, false, ErrPoolClosed
		}
		return w, false, nil
	default:
	}

	p.mu.Lock()
	if !p.closed && p.overflow < p.cfg.MaxOverflow {
		p.overflow++
		p.mu.Unlock()
		w, err := NewWorker(p.cfg)
		if err != nil {
			p.mu.Lock()
			p.overflow--
			p.mu.Unlock()
			return nil, false, err
		}
		return w, true, nil
	}
	p.mu.Unlock()

	select {
	case w, ok := <-p.idle:
		if !ok {
			return nil, false, ErrPoolClosed
		}
		return w, false, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// checkin returns w to the idle pool, or closes it if the pool has been
// closed or is full. The closed-check and the send onto p.idle happen under
// the same lock Close uses around its own close(p.idle), so a checkin that
// observes closed == false is guaranteed the channel is still open when it
// sends.
func (p *Pool) checkin(w *Worker, transient bool) {
	if transient {
		w.Close()
		p.mu.Lock()
		p.overflow--
		p.mu.Unlock()
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		w.Close()
		return
	}
	select {
	case p.idle <- w:
	default:
		w.Close()
	}
}

// Query checks out a worker, submits t, and checks the worker back in
// (closing it first if it was a transient overflow worker).
func (p *Pool) Query(ctx context.Context, t Traversal, timeout time.Duration) ([]interface{}, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	p.mu.Unlock()

	if timeout <= 0 {
		timeout = p.cfg.Timeout
	}
	checkoutCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		checkoutCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	w, transient, err := p.checkout(checkoutCtx)
	if err != nil {
		if err == context.DeadlineExceeded {
			return nil, ErrPoolExhausted
		}
		return nil, err
	}
	defer p.checkin(w, transient)

	return w.Query(ctx, t, timeout)
}

// Close terminates every persistent worker and prevents further checkouts.
// Workers currently checked out are closed as they're returned.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.idle)
	p.mu.Unlock()

	for w := range p.idle {
		w.Close()
	}
	return nil
}
