package polling

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"controle_frete/internal/models"
	"controle_frete/pkg/freteclient"
)

type State int

const (
	StateOffline State = iota
	StateOnline
)

func (s State) String() string {
	if s == StateOnline {
		return "ONLINE"
	}
	return "OFFLINE"
}

// Fetcher is the slice of the API client the poller needs.
type Fetcher interface {
	Ping(ctx context.Context) error
	ListFretes(ctx context.Context) ([]models.Frete, error)
}

type Options struct {
	HeartbeatInterval time.Duration
	RefreshInterval   time.Duration
	RequestTimeout    time.Duration

	// OnFretes receives every successful fetch; changed is false when the
	// ordered-id fingerprint matches the previous fetch.
	OnFretes func(fretes []models.Frete, changed bool)
	// OnStateChange fires on OFFLINE/ONLINE transitions.
	OnStateChange func(state State)
	// OnSessionExpired fires once when the server answers 401; the loop
	// exits afterwards.
	OnSessionExpired func()
}

// Poller keeps an in-memory view in sync with the server: a heartbeat drives
// the OFFLINE/ONLINE state machine and a refresh tick reloads the collection
// while online. Fetches are single-flight; overlapping ticks are dropped.
type Poller struct {
	fetcher     Fetcher
	opts        Options
	state       State
	inFlight    bool
	fingerprint string
}

func NewPoller(fetcher Fetcher, opts Options) *Poller {
	if opts.HeartbeatInterval <= 0 {
		opts.HeartbeatInterval = 15 * time.Second
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 10 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	return &Poller{fetcher: fetcher, opts: opts, state: StateOffline}
}

func (p *Poller) State() State {
	return p.state
}

type fetchResult struct {
	fretes []models.Frete
	err    error
}

// Run blocks until ctx is cancelled or the session expires. All state lives
// on this goroutine; fetches run aside and report back over a channel.
func (p *Poller) Run(ctx context.Context) {
	heartbeat := time.NewTicker(p.opts.HeartbeatInterval)
	defer heartbeat.Stop()
	refresh := time.NewTicker(p.opts.RefreshInterval)
	defer refresh.Stop()

	results := make(chan fetchResult, 1)

	if !p.runHeartbeat(ctx, results) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if !p.runHeartbeat(ctx, results) {
				return
			}
		case <-refresh.C:
			if p.state == StateOnline && !p.inFlight {
				p.startFetch(ctx, results)
			}
		case res := <-results:
			p.inFlight = false
			p.handleResult(res)
		}
	}
}

// runHeartbeat probes the server and applies the state transition. Returns
// false when the session expired and the loop must stop.
func (p *Poller) runHeartbeat(ctx context.Context, results chan fetchResult) bool {
	probeCtx, cancel := context.WithTimeout(ctx, p.opts.RequestTimeout)
	err := p.fetcher.Ping(probeCtx)
	cancel()

	if errors.Is(err, freteclient.ErrUnauthorized) {
		if p.opts.OnSessionExpired != nil {
			p.opts.OnSessionExpired()
		}
		return false
	}

	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.setState(StateOffline)
		return true
	}

	wasOffline := p.state == StateOffline
	p.setState(StateOnline)
	if wasOffline && !p.inFlight {
		// Coming back online reloads the whole collection.
		p.startFetch(ctx, results)
	}
	return true
}

func (p *Poller) setState(state State) {
	if p.state == state {
		return
	}
	p.state = state
	if p.opts.OnStateChange != nil {
		p.opts.OnStateChange(state)
	}
}

func (p *Poller) startFetch(ctx context.Context, results chan fetchResult) {
	p.inFlight = true
	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, p.opts.RequestTimeout)
		defer cancel()
		fretes, err := p.fetcher.ListFretes(fetchCtx)
		results <- fetchResult{fretes: fretes, err: err}
	}()
}

func (p *Poller) handleResult(res fetchResult) {
	if res.err != nil {
		// Transient; the next tick retries.
		log.Printf("Erro ao carregar fretes: %v", res.err)
		return
	}

	fingerprint := Fingerprint(res.fretes)
	changed := fingerprint != p.fingerprint
	p.fingerprint = fingerprint

	if p.opts.OnFretes != nil {
		p.opts.OnFretes(res.fretes, changed)
	}
}

// Fingerprint identifies a fetch by its ordered id sequence.
func Fingerprint(fretes []models.Frete) string {
	ids := make([]string, len(fretes))
	for i := range fretes {
		ids[i] = fretes[i].ID
	}
	return strings.Join(ids, ",")
}
