package ingest

import (
	"math"

	"github.com/pkg/errors"

	"github.com/xor-shift/rngeasy/common"
	"github.com/xor-shift/rngeasy/util/rng"
)

// MaxResultWords is the widest result any operation produces (a quaternion).
const MaxResultWords = 4

var ErrBadArgs = errors.New("arguments violate the operation's preconditions")

func floatWord(f float32) []uint32 {
	return []uint32{math.Float32bits(f)}
}

func boolWord(b bool) []uint32 {
	if b {
		return []uint32{1}
	}
	return []uint32{0}
}

// Replay runs the reported operation on state and returns the words it
// should have produced. Arguments are validated first so that a report can
// never trip a library precondition.
func Replay(state *rng.State, op common.Operation, parsed any) ([]uint32, error) {
	switch args := parsed.(type) {
	case *common.NoArgs:
		return replayNoArgs(state, op)

	case *common.BoundArgs:
		if args.Bound == 0 {
			return nil, errors.Wrap(ErrBadArgs, "bound is zero")
		}
		return []uint32{rng.U32To(state, args.Bound)}, nil

	case *common.DiceArgs:
		if args.Sides == 0 {
			return nil, errors.Wrap(ErrBadArgs, "die has no sides")
		}
		return []uint32{rng.Dice(state, args.Sides)}, nil

	case *common.DiceNoRepeatArgs:
		if args.Sides < 2 {
			return nil, errors.Wrap(ErrBadArgs, "die needs at least two sides")
		}
		return []uint32{rng.DiceNoRepeat(state, args.Sides, args.PrevRoll)}, nil

	case *common.OneInArgs:
		return boolWord(rng.OneIn(state, args.Chance)), nil

	case *common.U32RangeArgs:
		if args.Hi < args.Lo {
			return nil, errors.Wrap(ErrBadArgs, "inverted range")
		}
		return []uint32{rng.U32In(state, args.Lo, args.Hi)}, nil

	case *common.S32RangeArgs:
		if args.Hi < args.Lo {
			return nil, errors.Wrap(ErrBadArgs, "inverted range")
		}
		return []uint32{uint32(rng.S32In(state, args.Lo, args.Hi))}, nil

	case *common.FloatRangeArgs:
		if !(args.Lo <= args.Hi) {
			return nil, errors.Wrap(ErrBadArgs, "inverted or NaN range")
		}
		return floatWord(rng.FloatIn(state, args.Lo, args.Hi)), nil

	case *common.HemisphereArgs:
		normal := rng.Vec3{X: args.Normal[0], Y: args.Normal[1], Z: args.Normal[2]}
		return rng.PointOnUnitHemisphere(state, normal).Words(), nil

	case *common.ShuffleArgs:
		if args.Count == 0 || args.Index >= args.Count {
			return nil, errors.Wrap(ErrBadArgs, "index outside of [0, count)")
		}
		return []uint32{rng.Shuffle(args.Index, args.Count, args.Seed)}, nil
	}

	return nil, errors.Errorf("no replay for %s args %T", op, parsed)
}

func replayNoArgs(state *rng.State, op common.Operation) ([]uint32, error) {
	switch op {
	case common.OpAdvance:
		return []uint32{rng.U32Any(state)}, nil
	case common.OpFloatUnit:
		return floatWord(rng.FloatUnit(state)), nil
	case common.OpFloatEUnit:
		return floatWord(rng.FloatEUnit(state)), nil
	case common.OpFloatSnit:
		return floatWord(rng.FloatSnit(state)), nil
	case common.OpFloatESnit:
		return floatWord(rng.FloatESnit(state)), nil
	case common.OpInUnitCircle:
		return rng.PointInUnitCircle(state).Words(), nil
	case common.OpOnUnitCircle:
		return rng.PointOnUnitCircle(state).Words(), nil
	case common.OpOnUnitSphere:
		return rng.PointOnUnitSphere(state).Words(), nil
	case common.OpQuaternion:
		return rng.RandomQuaternion(state).Words(), nil
	}

	return nil, errors.Errorf("no replay for %s", op)
}
