package common

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Operation names a distribution call a producer can report.
type Operation = string

const (
	OpAdvance          Operation = "advance"
	OpU32To            Operation = "u32_to"
	OpU32In            Operation = "u32_in"
	OpS32In            Operation = "s32_in"
	OpDice             Operation = "dice"
	OpDiceNoRepeat     Operation = "dice_no_repeat"
	OpOneIn            Operation = "one_in"
	OpFloatUnit        Operation = "float_unit"
	OpFloatEUnit       Operation = "float_eunit"
	OpFloatIn          Operation = "float_in"
	OpFloatSnit        Operation = "float_snit"
	OpFloatESnit       Operation = "float_esnit"
	OpInUnitCircle     Operation = "in_unit_circle"
	OpOnUnitCircle     Operation = "on_unit_circle"
	OpOnUnitSphere     Operation = "on_unit_sphere"
	OpOnUnitHemisphere Operation = "on_unit_hemisphere"
	OpQuaternion       Operation = "quaternion"
	OpShuffle          Operation = "shuffle"
)

var ErrNoSession = errors.New("no such session")

type NoArgs struct{}

type BoundArgs struct {
	Bound uint32 `json:"bound" mapstructure:"bound"`
}

type DiceArgs struct {
	Sides uint32 `json:"sides" mapstructure:"sides"`
}

type DiceNoRepeatArgs struct {
	Sides    uint32 `json:"sides" mapstructure:"sides"`
	PrevRoll uint32 `json:"prev" mapstructure:"prev"`
}

type OneInArgs struct {
	Chance uint32 `json:"chance" mapstructure:"chance"`
}

type U32RangeArgs struct {
	Lo uint32 `json:"lo" mapstructure:"lo"`
	Hi uint32 `json:"hi" mapstructure:"hi"`
}

type S32RangeArgs struct {
	Lo int32 `json:"lo" mapstructure:"lo"`
	Hi int32 `json:"hi" mapstructure:"hi"`
}

type FloatRangeArgs struct {
	Lo float32 `json:"lo" mapstructure:"lo"`
	Hi float32 `json:"hi" mapstructure:"hi"`
}

type HemisphereArgs struct {
	Normal [3]float32 `json:"normal" mapstructure:"normal"`
}

type ShuffleArgs struct {
	Index uint32 `json:"index" mapstructure:"index"`
	Count uint32 `json:"count" mapstructure:"count"`
	Seed  uint32 `json:"seed" mapstructure:"seed"`
}

var argTypes = map[Operation]func() any{
	OpAdvance:          func() any { return &NoArgs{} },
	OpU32To:            func() any { return &BoundArgs{} },
	OpU32In:            func() any { return &U32RangeArgs{} },
	OpS32In:            func() any { return &S32RangeArgs{} },
	OpDice:             func() any { return &DiceArgs{} },
	OpDiceNoRepeat:     func() any { return &DiceNoRepeatArgs{} },
	OpOneIn:            func() any { return &OneInArgs{} },
	OpFloatUnit:        func() any { return &NoArgs{} },
	OpFloatEUnit:       func() any { return &NoArgs{} },
	OpFloatIn:          func() any { return &FloatRangeArgs{} },
	OpFloatSnit:        func() any { return &NoArgs{} },
	OpFloatESnit:       func() any { return &NoArgs{} },
	OpInUnitCircle:     func() any { return &NoArgs{} },
	OpOnUnitCircle:     func() any { return &NoArgs{} },
	OpOnUnitSphere:     func() any { return &NoArgs{} },
	OpOnUnitHemisphere: func() any { return &HemisphereArgs{} },
	OpQuaternion:       func() any { return &NoArgs{} },
	OpShuffle:          func() any { return &ShuffleArgs{} },
}

// Operations lists every operation name a report may carry.
func Operations() []Operation {
	ret := make([]Operation, 0, len(argTypes))
	for op := range argTypes {
		ret = append(ret, op)
	}
	sort.Strings(ret)
	return ret
}

type ReportHeader struct {
	// Sequence is the number of advances the stream had made before the call.
	Sequence uint64    `json:"seq"`
	Op       Operation `json:"op"`
}

// Report is one distribution call observed by a producer. Result holds the
// returned value as 32 bit words: integers as is, floats as their IEEE-754
// bit patterns, booleans as 0 or 1, vectors component by component.
type Report struct {
	ReportHeader

	Args   map[string]any `json:"args,omitempty"`
	Result []uint32       `json:"result"`

	// Parsed is the pointer to the op specific args struct, set by ParseReports.
	Parsed any `json:"-"`
}

// Verdict is the outcome of replaying one report.
type Verdict struct {
	SessionID uint64    `json:"sessionId"`
	Sequence  uint64    `json:"seq"`
	Op        Operation `json:"op"`
	Expected  []uint32  `json:"expected"`
	Got       []uint32  `json:"got"`
	OK        bool      `json:"ok"`
	Reason    string    `json:"reason,omitempty"`
}

func init() {
	gob.Register(Verdict{})
}

// exactNumber rejects JSON numbers that would change value when stored in
// the target field: fractions or out of range values for integers, and
// magnitudes beyond float32 for floats.
func exactNumber(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 {
		return data, nil
	}

	f := data.(float64)

	switch to.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		if f != math.Trunc(f) || f < 0 || f > math.Ldexp(1, to.Bits())-1 {
			return nil, errors.Errorf("%v does not fit in %s", f, to)
		}
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		limit := math.Ldexp(1, to.Bits()-1)
		if f != math.Trunc(f) || f < -limit || f > limit-1 {
			return nil, errors.Errorf("%v does not fit in %s", f, to)
		}
	case reflect.Float32:
		if math.Abs(f) > math.MaxFloat32 {
			return nil, errors.Errorf("%v does not fit in %s", f, to)
		}
	}

	return data, nil
}

// DecodeArgs decodes a loosely typed args object into the struct for op.
func DecodeArgs(op Operation, args map[string]any) (any, error) {
	newArgs, ok := argTypes[op]
	if !ok {
		return nil, errors.Errorf("unknown op %q", op)
	}

	out := newArgs()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  exactNumber,
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return nil, err
	}

	if err = decoder.Decode(args); err != nil {
		return nil, errors.Wrapf(err, "bad args for %s", op)
	}

	return out, nil
}

// ParseReports decodes a JSON array of reports and their op specific args.
func ParseReports(body []byte) (reports []Report, err error) {
	if err = json.Unmarshal(body, &reports); err != nil {
		return nil, errors.Wrap(err, "bad report body")
	}

	for k := range reports {
		if reports[k].Parsed, err = DecodeArgs(reports[k].Op, reports[k].Args); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("report at index %d", k))
		}
	}

	return reports, nil
}
