package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xor-shift/rngeasy/common"
)

func verdict(session, seq uint64, ok bool) common.Verdict {
	return common.Verdict{
		SessionID: session,
		Sequence:  seq,
		Op:        common.OpAdvance,
		Expected:  []uint32{1},
		Got:       []uint32{1},
		OK:        ok,
	}
}

func TestBoardTallies(t *testing.T) {
	b := newBoard(2)

	snap := b.Snapshot()
	assert.Nil(t, snap.Last)
	assert.Empty(t, snap.Sessions)

	b.Add(verdict(2, 0, true))
	b.Add(verdict(1, 0, true))
	b.Add(verdict(2, 1, false))
	b.Add(verdict(2, 2, false))
	b.Add(verdict(1, 1, false))

	snap = b.Snapshot()
	require.NotNil(t, snap.Last)
	assert.Equal(t, verdict(1, 1, false), *snap.Last)

	assert.Equal(t, []SessionTally{
		{SessionID: 1, Verified: 1, Mismatched: 1, LastSequence: 1},
		{SessionID: 2, Verified: 1, Mismatched: 2, LastSequence: 2},
	}, snap.Sessions)

	assert.Equal(t, []common.Verdict{verdict(2, 2, false), verdict(1, 1, false)}, snap.Failures)
}

func TestBoardSnapshotIsACopy(t *testing.T) {
	b := newBoard(4)
	b.Add(verdict(1, 0, false))

	snap := b.Snapshot()
	snap.Failures[0].Reason = "changed"
	snap.Sessions[0].Verified = 100

	again := b.Snapshot()
	assert.Empty(t, again.Failures[0].Reason)
	assert.Zero(t, again.Sessions[0].Verified)
}

func TestDataEndpoint(t *testing.T) {
	b := newBoard(4)
	b.Add(verdict(3, 7, true))

	app := newApp(b)
	app.Logger().SetOutput(io.Discard)
	require.NoError(t, app.Build())

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, []SessionTally{{SessionID: 3, Verified: 1, LastSequence: 7}}, snap.Sessions)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, "OK", rec.Body.String())
}
