package common

import (
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReports(t *testing.T) {
	body := []byte(`[
		{"seq": 0, "op": "advance", "result": [1076866619]},
		{"seq": 1, "op": "u32_in", "args": {"lo": 3, "hi": 9}, "result": [4]},
		{"seq": 2, "op": "s32_in", "args": {"lo": -7, "hi": 7}, "result": [4294967295]},
		{"seq": 3, "op": "float_in", "args": {"lo": -0.5, "hi": 2.25}, "result": [0]},
		{"seq": 4, "op": "on_unit_hemisphere", "args": {"normal": [0, 1, 0]}, "result": [0, 0, 0]},
		{"seq": 0, "op": "shuffle", "args": {"index": 3, "count": 37, "seed": 1234}, "result": [2]}
	]`)

	reports, err := ParseReports(body)
	require.NoError(t, err)
	require.Len(t, reports, 6)

	assert.Equal(t, &NoArgs{}, reports[0].Parsed)
	assert.Equal(t, []uint32{1076866619}, reports[0].Result)
	assert.Equal(t, &U32RangeArgs{Lo: 3, Hi: 9}, reports[1].Parsed)
	assert.Equal(t, &S32RangeArgs{Lo: -7, Hi: 7}, reports[2].Parsed)
	assert.Equal(t, &FloatRangeArgs{Lo: -0.5, Hi: 2.25}, reports[3].Parsed)
	assert.Equal(t, &HemisphereArgs{Normal: [3]float32{0, 1, 0}}, reports[4].Parsed)
	assert.Equal(t, &ShuffleArgs{Index: 3, Count: 37, Seed: 1234}, reports[5].Parsed)
	assert.Equal(t, uint64(4), reports[4].Sequence)
}

func TestParseReportsRejects(t *testing.T) {
	cases := map[string]string{
		"not json":     `{`,
		"unknown op":   `[{"seq": 0, "op": "gaussian", "result": [0]}]`,
		"unknown arg":  `[{"seq": 0, "op": "dice", "args": {"faces": 6}, "result": [0]}]`,
		"wrong type":   `[{"seq": 0, "op": "dice", "args": {"sides": "six"}, "result": [0]}]`,
		"fraction":     `[{"seq": 0, "op": "dice", "args": {"sides": 6.9}, "result": [0]}]`,
		"u32 overflow": `[{"seq": 0, "op": "u32_to", "args": {"bound": 4294967302}, "result": [0]}]`,
		"negative u32": `[{"seq": 0, "op": "one_in", "args": {"chance": -1}, "result": [0]}]`,
		"s32 overflow": `[{"seq": 0, "op": "s32_in", "args": {"lo": -2147483649, "hi": 0}, "result": [0]}]`,
		"f32 overflow": `[{"seq": 0, "op": "float_in", "args": {"lo": 0, "hi": 1e39}, "result": [0]}]`,
		"normal range": `[{"seq": 0, "op": "on_unit_hemisphere", "args": {"normal": [0, 1e40, 0]}, "result": [0]}]`,
		"not an array": `{"seq": 0, "op": "advance"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseReports([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestDecodeArgsLimits(t *testing.T) {
	parsed, err := DecodeArgs(OpU32To, map[string]any{"bound": float64(4294967295)})
	require.NoError(t, err)
	assert.Equal(t, &BoundArgs{Bound: 4294967295}, parsed)

	parsed, err = DecodeArgs(OpS32In, map[string]any{"lo": float64(-2147483648), "hi": float64(2147483647)})
	require.NoError(t, err)
	assert.Equal(t, &S32RangeArgs{Lo: -2147483648, Hi: 2147483647}, parsed)

	_, err = DecodeArgs(OpS32In, map[string]any{"lo": float64(0), "hi": float64(2147483648)})
	assert.Error(t, err)

	_, err = DecodeArgs(OpU32To, map[string]any{"bound": float64(4294967296)})
	assert.Error(t, err)
}

func TestOperationsCoverArgTypes(t *testing.T) {
	ops := Operations()
	assert.Len(t, ops, len(argTypes))
	assert.IsIncreasing(t, ops)

	for _, op := range ops {
		_, err := DecodeArgs(op, nil)
		assert.NoError(t, err, op)
	}
}

func TestVerdictGob(t *testing.T) {
	v := Verdict{
		SessionID: 7,
		Sequence:  12,
		Op:        OpQuaternion,
		Expected:  []uint32{1, 2, 3, 4},
		Got:       []uint32{1, 2, 3, 5},
		Reason:    "mismatch in word 3",
	}

	body, err := EncodeVerdict(v)
	require.NoError(t, err)

	got, err := ParseAMQPVerdict(&amqp.Delivery{Body: body})
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = ParseAMQPVerdict(&amqp.Delivery{Body: []byte("garbage")})
	assert.Error(t, err)
}
