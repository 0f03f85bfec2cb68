package endb

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
)

// MathOp names a numeric mutation applied by Store.Math.
type MathOp string

const (
	OpAdd      MathOp = "add"
	OpSubtract MathOp = "subtract"
	OpMultiply MathOp = "multiply"
	OpDivision MathOp = "division"
	OpExp      MathOp = "exp"
	OpModulo   MathOp = "modulo"
	OpRandom   MathOp = "random"
)

// ParseMathOp resolves an operation name to its canonical MathOp. The short
// aliases sub, mult, div, mod and rand are accepted alongside the canonical
// names.
func ParseMathOp(op string) (MathOp, error) {
	switch MathOp(op) {
	case OpAdd, OpSubtract, OpMultiply, OpDivision, OpExp, OpModulo, OpRandom:
		return MathOp(op), nil
	}
	switch op {
	case "sub":
		return OpSubtract, nil
	case "mult":
		return OpMultiply, nil
	case "div":
		return OpDivision, nil
	case "mod":
		return OpModulo, nil
	case "rand":
		return OpRandom, nil
	}
	return "", fmt.Errorf("endb: unsupported math operation %q", op)
}

// applyMath computes the next value for base (the stored number, 0 when the
// key was absent) and the caller's operand.
func applyMath(op MathOp, base, operand float64) (float64, error) {
	canonical, err := ParseMathOp(string(op))
	if err != nil {
		return 0, err
	}
	switch canonical {
	case OpAdd:
		return base + operand, nil
	case OpSubtract:
		return base - operand, nil
	case OpMultiply:
		return base * operand, nil
	case OpDivision:
		if operand == 0 {
			return 0, fmt.Errorf("endb: division by zero")
		}
		return base / operand, nil
	case OpExp:
		return math.Pow(base, operand), nil
	case OpModulo:
		if operand == 0 {
			return 0, fmt.Errorf("endb: modulo by zero")
		}
		return math.Mod(base, operand), nil
	default: // OpRandom
		// integer uniform over [0, operand]; the stored value plays no part
		return math.Round(rand.Float64() * operand), nil
	}
}

// toFloat widens any stored numeric representation to float64. Codecs
// disagree on the way back: JSON hands numbers over as float64, msgpack and
// CBOR as int64/uint64, and a json.Number appears when a custom codec opts
// into it.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
