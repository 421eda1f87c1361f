package polling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"controle_frete/internal/models"
	"controle_frete/pkg/freteclient"
)

type fakeFetcher struct {
	mu        sync.Mutex
	pingErrs  []error
	fretes    []models.Frete
	listCalls int
	block     chan struct{}
}

func (f *fakeFetcher) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.pingErrs) == 0 {
		return nil
	}
	err := f.pingErrs[0]
	f.pingErrs = f.pingErrs[1:]
	return err
}

func (f *fakeFetcher) ListFretes(ctx context.Context) ([]models.Frete, error) {
	f.mu.Lock()
	f.listCalls++
	block := f.block
	fretes := append([]models.Frete(nil), f.fretes...)
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return fretes, nil
}

func (f *fakeFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func opcoesRapidas() Options {
	return Options{
		HeartbeatInterval: 5 * time.Millisecond,
		RefreshInterval:   5 * time.Millisecond,
		RequestTimeout:    50 * time.Millisecond,
	}
}

func TestPollerSessionExpired(t *testing.T) {
	fetcher := &fakeFetcher{pingErrs: []error{freteclient.ErrUnauthorized}}

	expirou := make(chan struct{})
	opts := opcoesRapidas()
	opts.OnSessionExpired = func() { close(expirou) }

	poller := NewPoller(fetcher, opts)
	done := make(chan struct{})
	go func() {
		poller.Run(context.Background())
		close(done)
	}()

	select {
	case <-expirou:
	case <-time.After(time.Second):
		t.Fatal("expected session-expired callback")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected the loop to exit after session expiry")
	}
}

func TestPollerOfflineToOnlineReloads(t *testing.T) {
	fetcher := &fakeFetcher{
		pingErrs: []error{errors.New("connection refused"), errors.New("timeout")},
		fretes:   []models.Frete{{ID: "a"}, {ID: "b"}},
	}

	estados := make(chan State, 8)
	carregado := make(chan []models.Frete, 1)
	opts := opcoesRapidas()
	opts.OnStateChange = func(s State) { estados <- s }
	opts.OnFretes = func(fretes []models.Frete, changed bool) {
		select {
		case carregado <- fretes:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller := NewPoller(fetcher, opts)
	go poller.Run(ctx)

	select {
	case s := <-estados:
		if s != StateOnline {
			t.Fatalf("expected first transition to ONLINE, got %s", s)
		}
	case <-time.After(time.Second):
		t.Fatal("expected an ONLINE transition")
	}

	select {
	case fretes := <-carregado:
		if len(fretes) != 2 {
			t.Fatalf("expected full reload with 2 records, got %d", len(fretes))
		}
	case <-time.After(time.Second):
		t.Fatal("expected a reload after coming online")
	}
}

func TestPollerFingerprint(t *testing.T) {
	fetcher := &fakeFetcher{fretes: []models.Frete{{ID: "a"}, {ID: "b"}}}

	type entrega struct{ changed bool }
	entregas := make(chan entrega, 16)
	opts := opcoesRapidas()
	opts.OnFretes = func(fretes []models.Frete, changed bool) {
		entregas <- entrega{changed: changed}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller := NewPoller(fetcher, opts)
	go poller.Run(ctx)

	primeira := aguardar(t, entregas)
	if !primeira.changed {
		t.Fatal("expected first fetch to report a change")
	}
	segunda := aguardar(t, entregas)
	if segunda.changed {
		t.Fatal("expected unchanged fingerprint on identical fetch")
	}

	fetcher.mu.Lock()
	fetcher.fretes = []models.Frete{{ID: "a"}}
	fetcher.mu.Unlock()

	prazo := time.After(time.Second)
	for {
		select {
		case e := <-entregas:
			if e.changed {
				return
			}
		case <-prazo:
			t.Fatal("expected a change after the collection shrank")
		}
	}
}

func aguardar[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting")
		panic("unreachable")
	}
}

func TestPollerSingleFlight(t *testing.T) {
	fetcher := &fakeFetcher{
		fretes: []models.Frete{{ID: "a"}},
		block:  make(chan struct{}),
	}

	opts := opcoesRapidas()
	opts.RequestTimeout = 5 * time.Second
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller := NewPoller(fetcher, opts)
	go poller.Run(ctx)

	// Many refresh ticks elapse while the first fetch is stuck; none may
	// start a second one.
	time.Sleep(60 * time.Millisecond)
	if got := fetcher.calls(); got != 1 {
		t.Fatalf("expected a single in-flight fetch, got %d", got)
	}

	close(fetcher.block)
	deadline := time.Now().Add(time.Second)
	for fetcher.calls() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("expected fetching to resume after the first completed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
