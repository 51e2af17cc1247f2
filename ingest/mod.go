// Package ingest checks reports from remote generators against a local
// replay of the same stream and fans the verdicts out to consumers.
package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/xor-shift/rngeasy/common"
	"github.com/xor-shift/rngeasy/util/rng"
)

// SessionStore persists session seeds so that sessions survive a restart.
// SessionSeed returns an error matching common.ErrNoSession for unknown ids.
type SessionStore interface {
	CreateSession(ctx context.Context, seed uint32, initial rng.State) (uint64, error)
	SessionSeed(ctx context.Context, id uint64) (uint32, error)
}

// Sink receives every verdict. Publish may be called from several workers
// at once.
type Sink interface {
	Publish(verdict common.Verdict) error
}

// session replays one stream. The cursor is the state after position
// advances; reports that start behind it restart from the seed.
type session struct {
	mu sync.Mutex

	id   uint64
	seed uint32

	position uint64
	cursor   rng.State
}

func newSession(id uint64, seed uint32) *session {
	return &session{id: id, seed: seed, cursor: rng.Seed(seed)}
}

// stateAt returns the stream state after seq advances.
func (s *session) stateAt(seq, maxSkip uint64) (rng.State, error) {
	if seq < s.position {
		s.position = 0
		s.cursor = rng.Seed(s.seed)
	}

	if skip := seq - s.position; skip > maxSkip {
		return rng.State{}, errors.Errorf("sequence %d is %d advances ahead of the cursor (max %d)", seq, skip, maxSkip)
	}

	s.cursor.Skip(seq - s.position)
	s.position = seq

	return s.cursor, nil
}

type Ingest struct {
	store  SessionStore
	sink   Sink
	logger *log.Logger

	maxSkip uint64

	mu       sync.Mutex
	sessions map[uint64]*session

	verdictWG *sync.WaitGroup
	outgoing  chan []common.Verdict
}

func NewIngester(store SessionStore, sink Sink, logger *log.Logger, maxSkip uint64) *Ingest {
	return &Ingest{
		store:  store,
		sink:   sink,
		logger: logger,

		maxSkip: maxSkip,

		sessions: make(map[uint64]*session),

		verdictWG: &sync.WaitGroup{},
		outgoing:  make(chan []common.Verdict, 128),
	}
}

// NewSession registers a stream seeded with seed and returns its id and
// initial state.
func (ingest *Ingest) NewSession(ctx context.Context, seed uint32) (uint64, rng.State, error) {
	initial := rng.Seed(seed)

	id, err := ingest.store.CreateSession(ctx, seed, initial)
	if err != nil {
		return 0, rng.State{}, errors.Wrap(err, "creating session")
	}

	ingest.mu.Lock()
	ingest.sessions[id] = newSession(id, seed)
	ingest.mu.Unlock()

	ingest.logger.Info("started session", "session", id, "seed", seed, "state", initial)

	return id, initial, nil
}

func (ingest *Ingest) session(ctx context.Context, id uint64) (*session, error) {
	ingest.mu.Lock()
	s, ok := ingest.sessions[id]
	ingest.mu.Unlock()

	if ok {
		return s, nil
	}

	seed, err := ingest.store.SessionSeed(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "loading session %d", id)
	}

	ingest.mu.Lock()
	defer ingest.mu.Unlock()

	// another request may have loaded it meanwhile
	if s, ok = ingest.sessions[id]; ok {
		return s, nil
	}

	s = newSession(id, seed)
	ingest.sessions[id] = s

	return s, nil
}

// Verify replays every report of a batch against the session and returns
// one verdict per report. Verdicts are queued for publishing as well; if ctx
// ends while the queue is full the verdicts are returned with ctx's error and
// are not published.
func (ingest *Ingest) Verify(ctx context.Context, sessionID uint64, reports []common.Report) ([]common.Verdict, error) {
	s, err := ingest.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	verdicts := make([]common.Verdict, len(reports))
	for i := range reports {
		verdicts[i] = ingest.verify(s, &reports[i])
	}
	s.mu.Unlock()

	bad := 0
	for _, v := range verdicts {
		if !v.OK {
			bad++
			ingest.logger.Warn("report mismatch",
				"session", sessionID, "seq", v.Sequence, "op", v.Op,
				"expected", v.Expected, "got", v.Got, "reason", v.Reason)
		}
	}
	ingest.logger.Debug("verified batch", "session", sessionID, "reports", len(reports), "mismatches", bad)

	select {
	case ingest.outgoing <- verdicts:
	case <-ctx.Done():
		return verdicts, errors.Wrap(ctx.Err(), "queueing verdicts")
	}

	return verdicts, nil
}

func (ingest *Ingest) verify(s *session, report *common.Report) common.Verdict {
	verdict := common.Verdict{
		SessionID: s.id,
		Sequence:  report.Sequence,
		Op:        report.Op,
		Got:       report.Result,
	}

	if len(verdict.Got) > MaxResultWords {
		verdict.Got = verdict.Got[:MaxResultWords]
		verdict.Reason = fmt.Sprintf("result has %d words", len(report.Result))
		return verdict
	}

	state, err := s.stateAt(report.Sequence, ingest.maxSkip)
	if err != nil {
		verdict.Reason = err.Error()
		return verdict
	}

	if verdict.Expected, err = Replay(&state, report.Op, report.Parsed); err != nil {
		verdict.Reason = err.Error()
		return verdict
	}

	if len(verdict.Expected) != len(verdict.Got) {
		verdict.Reason = fmt.Sprintf("expected %d words, got %d", len(verdict.Expected), len(verdict.Got))
		return verdict
	}

	for i := range verdict.Expected {
		if verdict.Expected[i] != verdict.Got[i] {
			verdict.Reason = fmt.Sprintf("mismatch in word %d", i)
			return verdict
		}
	}

	verdict.OK = true
	return verdict
}

// Start starts numThreads publishing workers. With more than one worker
// verdicts may reach the exchange out of order.
func (ingest *Ingest) Start(numThreads uint) {
	ingest.verdictWG.Add(int(numThreads))

	for i := uint(0); i < numThreads; i++ {
		go ingest.task()
	}
}

// Stop drains the queue and waits for the workers. Verify must not be
// called afterwards.
func (ingest *Ingest) Stop() {
	close(ingest.outgoing)
	ingest.verdictWG.Wait()
}

func (ingest *Ingest) task() {
	defer ingest.verdictWG.Done()

	for batch := range ingest.outgoing {
		for _, verdict := range batch {
			if err := ingest.sink.Publish(verdict); err != nil {
				ingest.logger.Error("publishing a verdict failed", "session", verdict.SessionID, "seq", verdict.Sequence, "err", err)
			}
		}
	}
}
