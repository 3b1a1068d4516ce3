package gremlex

import (
	"context"
	"sync"
	"time"
)

// workerState is the Connection Worker's lifecycle state.
type workerState int

const (
	stateInit workerState = iota
	stateConnecting
	stateActive
	statePassive
	stateReconnecting
	stateTerminated
)

// inFlight tracks the single query a Worker may be serving at a time: the
// read pump routes any response frame whose requestId matches into asm,
// recording the terminal outcome once the assembler completes. notify is a
// one-slot wake-up signal — the outcome itself always lives in the mutex
// guarded fields below, so a dropped duplicate signal never loses a frame.
type inFlight struct {
	requestID string

	mu     sync.Mutex
	asm    *assembler
	done   bool
	result []interface{}
	err    error

	notify chan struct{}
}

func newInFlight(requestID string) *inFlight {
	return &inFlight{
		requestID: requestID,
		asm:       newAssembler(requestID),
		notify:    make(chan struct{}, 1),
	}
}

// feed applies one response frame to the assembler and records the outcome
// if it's terminal, then wakes up any Query goroutine waiting on notify.
func (inf *inFlight) feed(resp response) {
	inf.mu.Lock()
	if !inf.done {
		outcome := inf.asm.feed(resp)
		if outcome.done {
			inf.done = true
			inf.result = outcome.result
			inf.err = outcome.err
		}
	}
	inf.mu.Unlock()
	inf.wake()
}

// fail records a terminal error (used when the connection drops mid-drain)
// unless the query has already completed.
func (inf *inFlight) fail(err error) {
	inf.mu.Lock()
	if !inf.done {
		inf.done = true
		inf.err = err
	}
	inf.mu.Unlock()
	inf.wake()
}

func (inf *inFlight) wake() {
	select {
	case inf.notify <- struct{}{}:
	default:
	}
}

// snapshot returns whether the query has completed and, if so, its outcome.
func (inf *inFlight) snapshot() (done bool, result []interface{}, err error) {
	inf.mu.Lock()
	defer inf.mu.Unlock()
	return inf.done, inf.result, inf.err
}

// Worker owns one persistent WebSocket connection to a Gremlin server. It
// runs a single read-pump goroutine for the lifetime of the connection,
// dispatching each inbound frame either to the currently in-flight query (in
// Passive mode) or dropping it as an unsolicited event (in Active mode), and
// a keep-alive ping goroutine whose failures are logged but never treated as
// connection errors — only the read pump's own I/O errors trigger a
// reconnect.
type Worker struct {
	cfg *Config

	mu        sync.Mutex
	state     workerState
	transport transport
	inFlight  *inFlight

	closeCh chan struct{}
	closeOnce sync.Once
}

// NewWorker dials cfg's server and starts the worker's read pump and
// keep-alive ping loop. The returned Worker begins in Active mode.
func NewWorker(cfg *Config) (*Worker, error) {
	w := &Worker{cfg: cfg, closeCh: make(chan struct{})}
	w.setState(stateConnecting)
	tr, err := dial(cfg)
	if err != nil {
		w.setState(stateTerminated)
		return nil, err
	}
	w.transport = tr
	w.setState(stateActive)

	go w.readPump()
	if cfg.PingDelay > 0 {
		go w.pingLoop()
	}
	return w, nil
}

func (w *Worker) setState(s workerState) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

func (w *Worker) getState() workerState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Query submits t for evaluation and blocks until a terminal response (200,
// 204, or an error status), timeout expiry, ctx cancellation, a dropped
// connection, or worker termination. Around
// the call the worker switches from Active to Passive mode and back.
func (w *Worker) Query(ctx context.Context, t Traversal, timeout time.Duration) ([]interface{}, error) {
	req, payload, err := prepareRequest(t)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.state == stateTerminated {
		w.mu.Unlock()
		return nil, ErrConnectionClosed
	}
	if w.state != stateActive {
		w.mu.Unlock()
		return nil, ErrConnectionUnavailable
	}
	inf := newInFlight(req.RequestID)
	w.inFlight = inf
	w.state = statePassive
	tr := w.transport
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.inFlight = nil
		if w.state == statePassive {
			w.state = stateActive
		}
		w.mu.Unlock()
	}()

	if err := tr.WriteText(payload); err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = w.cfg.Timeout
	}
	var timer *time.Timer
	var timeoutCh <-chan time.Time
	if timeout > 0 {
		timer = time.NewTimer(timeout)
		defer timer.Stop()
		timeoutCh = timer.C
	}

	if done, result, err := inf.snapshot(); done {
		return result, err
	}
	for {
		select {
		case <-inf.notify:
			if done, result, err := inf.snapshot(); done {
				return result, err
			}
		case <-timeoutCh:
			return nil, ErrTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-w.closeCh:
			return nil, ErrConnectionClosed
		}
	}
}

// readPump is the worker's single reader goroutine. It owns the transport
// for reading and is the only place a read error can trigger reconnection.
// A server close frame surfaces here the same way any other I/O error does
// (gorilla/websocket's default close handler replies and returns an error
// from the read), so both paths drive the same reconnect logic.
func (w *Worker) readPump() {
	for {
		w.mu.Lock()
		tr := w.transport
		w.mu.Unlock()
		if tr == nil {
			return
		}

		payload, err := tr.ReadText()
		if err != nil {
			w.cfg.debugf("gremlex: read error: %v", err)
			if w.reconnect() {
				continue
			}
			return
		}

		w.dispatch(payload)
	}
}

// dispatch routes one decoded text frame to the in-flight query, if its
// requestId matches; frames for any other id (or arriving with no query
// in flight) are dropped as unsolicited.
func (w *Worker) dispatch(payload []byte) {
	resp, err := parseResponse(payload)
	if err != nil {
		w.cfg.debugf("gremlex: %v", err)
		return
	}

	w.mu.Lock()
	inf := w.inFlight
	w.mu.Unlock()
	if inf == nil || resp.RequestID != inf.requestID {
		w.cfg.verbosef("gremlex: dropping unsolicited frame for requestId %s", resp.RequestID)
		return
	}

	inf.feed(resp)
}

// reconnect transitions to Reconnecting and redials cfg's server, retrying
// every cfg.ReconnectDelay until it succeeds or the worker is closed. It
// returns false if the worker was closed in the meantime.
func (w *Worker) reconnect() bool {
	w.mu.Lock()
	if w.state == stateTerminated {
		w.mu.Unlock()
		return false
	}
	w.state = stateReconnecting
	if w.transport != nil {
		w.transport.Close()
		w.transport = nil
	}
	if w.inFlight != nil {
		w.inFlight.fail(ErrConnectionClosed)
	}
	w.mu.Unlock()

	delay := w.cfg.ReconnectDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	for {
		select {
		case <-w.closeCh:
			return false
		default:
		}

		tr, err := dial(w.cfg)
		if err == nil {
			w.mu.Lock()
			if w.state == stateTerminated {
				w.mu.Unlock()
				tr.Close()
				return false
			}
			w.transport = tr
			w.state = stateActive
			w.mu.Unlock()
			return true
		}
		w.cfg.debugf("gremlex: reconnect failed: %v", err)

		select {
		case <-time.After(delay):
		case <-w.closeCh:
			return false
		}
	}
}

// pingLoop writes a keep-alive ping every cfg.PingDelay. A write failure is
// logged and otherwise ignored: the read pump's own error handling is the
// only path that triggers a reconnect.
func (w *Worker) pingLoop() {
	ticker := time.NewTicker(w.cfg.PingDelay)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.mu.Lock()
			tr := w.transport
			w.mu.Unlock()
			if tr == nil {
				continue
			}
			if pinger, ok := tr.(interface{ WritePing() error }); ok {
				if err := pinger.WritePing(); err != nil {
					w.cfg.debugf("gremlex: ping write failed: %v", err)
				}
			}
		case <-w.closeCh:
			return
		}
	}
}

// Close terminates the worker: the read pump and ping loop exit, and any
// in-flight query returns ErrConnectionClosed.
func (w *Worker) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.state = stateTerminated
		tr := w.transport
		w.mu.Unlock()
		close(w.closeCh)
		if tr != nil {
			tr.Close()
		}
	})
	return nil
}
