package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/kataras/iris/v12"
	"github.com/pkg/errors"

	"github.com/xor-shift/rngeasy/common"
	"github.com/xor-shift/rngeasy/ingest"
	"github.com/xor-shift/rngeasy/util/rng"
)

const (
	maxShuffleCount = 1 << 16
	maxVectorCount  = 1 << 12
)

type sessionRequest struct {
	Seed uint32 `json:"seed"`
}

type sessionResponse struct {
	Session uint64 `json:"session"`
	S0      uint32 `json:"s0"`
	S1      uint32 `json:"s1"`
	State   string `json:"state"`
}

func writeJSON(ctx iris.Context, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		_, _ = ctx.Text("internal error: %s", err)
		return
	}

	ctx.StatusCode(status)
	ctx.ContentType("application/json")
	_, _ = ctx.Write(body)
}

func writeError(ctx iris.Context, status int, err error) {
	writeJSON(ctx, status, map[string]string{"error": err.Error()})
}

func uintParam(ctx iris.Context, name string, bitSize int) (uint64, error) {
	raw := ctx.URLParam(name)
	if raw == "" {
		return 0, errors.Errorf("missing parameter %q", name)
	}

	v, err := strconv.ParseUint(raw, 10, bitSize)
	if err != nil {
		return 0, errors.Wrapf(err, "bad parameter %q", name)
	}
	return v, nil
}

func newApp(in *ingest.Ingest) *iris.Application {
	app := iris.New()

	app.Post("/session", func(ctx iris.Context) {
		app.Logger().Printf("session request from %s", ctx.RemoteAddr())

		body, err := ctx.GetBody()
		if err != nil {
			writeError(ctx, http.StatusBadRequest, err)
			return
		}

		var req sessionRequest
		if err = json.Unmarshal(body, &req); err != nil {
			writeError(ctx, http.StatusBadRequest, errors.Wrap(err, "bad session request"))
			return
		}

		id, initial, err := in.NewSession(ctx.Request().Context(), req.Seed)
		if err != nil {
			app.Logger().Warnf("/session error: %s", err)
			writeError(ctx, http.StatusInternalServerError, err)
			return
		}

		writeJSON(ctx, http.StatusOK, sessionResponse{
			Session: id,
			S0:      initial.S0,
			S1:      initial.S1,
			State:   initial.String(),
		})
	})

	app.Post("/session/{id:uint64}/reports", func(ctx iris.Context) {
		id, err := ctx.Params().GetUint64("id")
		if err != nil {
			writeError(ctx, http.StatusBadRequest, err)
			return
		}

		body, err := ctx.GetBody()
		if err != nil {
			writeError(ctx, http.StatusBadRequest, err)
			return
		}

		reports, err := common.ParseReports(body)
		if err != nil {
			app.Logger().Printf("/session/%d/reports error (ParseReports): %s", id, err)
			writeError(ctx, http.StatusBadRequest, err)
			return
		}

		verdicts, err := in.Verify(ctx.Request().Context(), id, reports)
		if errors.Is(err, common.ErrNoSession) {
			writeError(ctx, http.StatusNotFound, err)
			return
		}
		if err != nil {
			app.Logger().Warnf("/session/%d/reports error (Verify): %s", id, err)
			writeError(ctx, http.StatusInternalServerError, err)
			return
		}

		writeJSON(ctx, http.StatusOK, verdicts)
	})

	app.Get("/shuffle", func(ctx iris.Context) {
		count, err := uintParam(ctx, "count", 32)
		if err == nil && (count == 0 || count > maxShuffleCount) {
			err = errors.Errorf("count must be in [1, %d]", maxShuffleCount)
		}
		if err != nil {
			writeError(ctx, http.StatusBadRequest, err)
			return
		}

		seed, err := uintParam(ctx, "seed", 32)
		if err != nil {
			writeError(ctx, http.StatusBadRequest, err)
			return
		}

		writeJSON(ctx, http.StatusOK, rng.NewShuffler(uint32(count), uint32(seed)).Permutation())
	})

	app.Get("/vectors", func(ctx iris.Context) {
		seed, err := uintParam(ctx, "seed", 32)
		if err != nil {
			writeError(ctx, http.StatusBadRequest, err)
			return
		}

		n, err := uintParam(ctx, "n", 32)
		if err == nil && n > maxVectorCount {
			err = errors.Errorf("n must be at most %d", maxVectorCount)
		}
		if err != nil {
			writeError(ctx, http.StatusBadRequest, err)
			return
		}

		state := rng.Seed(uint32(seed))
		outputs := make([]uint32, n)
		for i := range outputs {
			outputs[i] = state.Advance()
		}

		writeJSON(ctx, http.StatusOK, outputs)
	})

	return app
}
