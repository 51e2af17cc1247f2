package main

import (
	"sort"
	"sync"

	"github.com/xor-shift/rngeasy/common"
)

type SessionTally struct {
	SessionID  uint64 `json:"sessionId"`
	Verified   uint64 `json:"verified"`
	Mismatched uint64 `json:"mismatched"`
	// LastSequence is the sequence number of the most recent verdict seen.
	LastSequence uint64 `json:"lastSeq"`
}

type Snapshot struct {
	Last     *common.Verdict `json:"last"`
	Sessions []SessionTally  `json:"sessions"`
	// Failures are the most recent mismatches, newest last.
	Failures []common.Verdict `json:"failures"`
}

// board tallies verdicts per session for the dashboard.
type board struct {
	mu          sync.Mutex
	last        *common.Verdict
	sessions    map[uint64]*SessionTally
	failures    []common.Verdict
	maxFailures int
}

func newBoard(maxFailures int) *board {
	return &board{
		sessions:    make(map[uint64]*SessionTally),
		maxFailures: maxFailures,
	}
}

func (b *board) Add(v common.Verdict) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.last = &v

	tally, ok := b.sessions[v.SessionID]
	if !ok {
		tally = &SessionTally{SessionID: v.SessionID}
		b.sessions[v.SessionID] = tally
	}

	tally.LastSequence = v.Sequence
	if v.OK {
		tally.Verified++
		return
	}

	tally.Mismatched++
	b.failures = append(b.failures, v)
	if over := len(b.failures) - b.maxFailures; over > 0 {
		b.failures = append(b.failures[:0:0], b.failures[over:]...)
	}
}

func (b *board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := Snapshot{
		Sessions: make([]SessionTally, 0, len(b.sessions)),
		Failures: append([]common.Verdict(nil), b.failures...),
	}

	if b.last != nil {
		last := *b.last
		snap.Last = &last
	}

	for _, tally := range b.sessions {
		snap.Sessions = append(snap.Sessions, *tally)
	}
	sort.Slice(snap.Sessions, func(i, j int) bool {
		return snap.Sessions[i].SessionID < snap.Sessions[j].SessionID
	})

	return snap
}
