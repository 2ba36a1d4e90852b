// Package syncclient keeps the local document mirrored to a hosted backend.
// The local store stays authoritative: pushes are debounced
// whole-document overwrites, pulls replace the document through the
// normalization pipeline, and any network failure leaves the app fully
// usable offline.
package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ozankoca/habitd/internal/store"
)

const DefaultDebounce = 1500 * time.Millisecond

var (
	ErrUserExists         = errors.New("syncclient: username already taken")
	ErrInvalidCredentials = errors.New("syncclient: invalid username or password")
)

type Config struct {
	BaseURL  string
	Username string
	Password string
	Debounce time.Duration
	Client   *http.Client
}

// Syncer watches a store and pushes its latest snapshot after each
// debounce window. Rapid successive mutations coalesce into one
// outbound write, and the snapshot is taken at send time, never
// captured early, so the remote always receives the newest state.
type Syncer struct {
	cfg   Config
	store *store.Store

	mu          sync.Mutex
	started     bool
	stopped     bool
	lastErr     error
	unsubscribe func()

	wake   chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}
}

func New(cfg Config, st *store.Store) *Syncer {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Syncer{
		cfg:    cfg,
		store:  st,
		wake:   make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start subscribes to the store and launches the push loop.
func (s *Syncer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return errors.New("syncclient: already started")
	}
	s.started = true
	s.unsubscribe = s.store.Subscribe(func() {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	})
	go s.run()
	return nil
}

// Stop detaches from the store and waits for the loop to exit. No
// final flush is attempted; the local document is durable either way.
func (s *Syncer) Stop() {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	unsubscribe := s.unsubscribe
	s.mu.Unlock()

	unsubscribe()
	close(s.stopCh)
	<-s.doneCh
}

// LastErr reports the most recent push failure, nil after a success.
func (s *Syncer) LastErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Syncer) run() {
	defer close(s.doneCh)
	for {
		select {
		case <-s.stopCh:
			return
		case <-s.wake:
		}
		timer := time.NewTimer(s.cfg.Debounce)
		select {
		case <-s.stopCh:
			timer.Stop()
			return
		case <-timer.C:
		}
		// Drain wakes accumulated during the window; the push below
		// reads the snapshot that includes them.
		select {
		case <-s.wake:
		default:
		}
		err := s.Push(context.Background())
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
	}
}

// remoteDocument is the wire shape of the synced document. Weight
// measurements are deliberately not part of it: the hosted schema
// lags behind, and pulls preserve the local values instead.
type remoteDocument struct {
	Goals        []store.Goal                           `json:"goals"`
	Completions  map[string]map[string]store.CellStatus `json:"completions"`
	ColumnWidths map[string]int                         `json:"columnWidths"`
	Comments     map[string]string                      `json:"comments"`
	Earnings     map[string]store.EarningsEntry         `json:"earnings"`
	WaterIntake  map[string]float64                     `json:"waterIntake"`
	DailyTasks   []store.DailyTask                      `json:"dailyTasks"`
	Theme        store.Theme                            `json:"theme"`
}

func toRemote(doc store.Document) remoteDocument {
	return remoteDocument{
		Goals:        doc.Goals,
		Completions:  doc.Completions,
		ColumnWidths: doc.ColumnWidths,
		Comments:     doc.Comments,
		Earnings:     doc.Earnings,
		WaterIntake:  doc.WaterIntake,
		DailyTasks:   doc.DailyTasks,
		Theme:        doc.Theme,
	}
}

// Push uploads the current snapshot as one whole-document overwrite.
func (s *Syncer) Push(ctx context.Context) error {
	doc := toRemote(s.store.Snapshot())
	body := struct {
		Username string         `json:"username"`
		Password string         `json:"password"`
		Data     remoteDocument `json:"data"`
	}{s.cfg.Username, s.cfg.Password, doc}
	_, err := s.do(ctx, http.MethodPut, "/user/data", body)
	return err
}

// Pull fetches the remote document and replaces the local one through
// the full normalization pipeline. Fields the remote schema lacks
// default instead of erroring, and local weight measurements survive.
func (s *Syncer) Pull(ctx context.Context) error {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{s.cfg.Username, s.cfg.Password}
	payload, err := s.do(ctx, http.MethodPost, "/auth/login", body)
	if err != nil {
		return err
	}
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &resp); err != nil {
		return fmt.Errorf("decode pull response: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(resp.Data, &fields); err != nil || fields == nil {
		fields = map[string]json.RawMessage{}
	}
	if _, ok := fields["weightMeasurements"]; !ok {
		local := s.store.Snapshot().WeightMeasurements
		if raw, err := json.Marshal(local); err == nil {
			fields["weightMeasurements"] = raw
		}
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode pulled document: %w", err)
	}
	if !s.store.ImportData(merged) {
		return errors.New("syncclient: pulled document not importable")
	}
	return nil
}

// Register creates the account on the backend.
func (s *Syncer) Register(ctx context.Context) error {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{s.cfg.Username, s.cfg.Password}
	_, err := s.do(ctx, http.MethodPost, "/auth/register", body)
	return err
}

func (s *Syncer) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.cfg.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return raw, nil
	case http.StatusConflict:
		return nil, ErrUserExists
	case http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
}
