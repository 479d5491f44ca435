package tabular

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// nullLiterals are string forms upstream systems use for "no value".
// They coerce to the default in numeric contexts and to "" in string
// contexts.
var nullLiterals = map[string]bool{
	"":     true,
	"null": true,
	"NaN":  true,
	"nan":  true,
}

// IsNull reports whether a value is absent: nil or one of the string
// null literals.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return nullLiterals[s]
	}
	return false
}

// ToString renders a value as a string. Nil and null literals render
// as the empty string.
func ToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if nullLiterals[val] {
			return ""
		}
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case decimal.Decimal:
		return val.String()
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ToInt64 parses a value as an int64, returning 0 for anything that
// does not carry an integral value.
func ToInt64(v any) int64 {
	switch val := v.(type) {
	case nil:
		return 0
	case int64:
		return val
	case int:
		return int64(val)
	case float64:
		return int64(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return int64(f)
		}
		return 0
	case string:
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
		return 0
	default:
		return 0
	}
}

// ToDecimal parses a value as a decimal, coercing missing, null-literal
// and unparsable values to zero. This is the parse-or-default rule the
// pipeline applies to quantity, rate and duration fields.
func ToDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case json.Number:
		if d, err := decimal.NewFromString(val.String()); err == nil {
			return d
		}
		return decimal.Zero
	case int64:
		return decimal.NewFromInt(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		if nullLiterals[val] {
			return decimal.Zero
		}
		if d, err := decimal.NewFromString(val); err == nil {
			return d
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// Display renders a value for human-facing output. Unlike ToString it
// serializes nested objects and object lists as compact JSON so view
// columns holding projected lists stay readable.
func Display(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case Object, []Object, []any:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	default:
		return ToString(v)
	}
}

// isNumeric reports whether a value carries a number, and returns it.
func isNumeric(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		return d, err == nil
	case int64:
		return decimal.NewFromInt(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case float64:
		return decimal.NewFromFloat(val), true
	case decimal.Decimal:
		return val, true
	default:
		return decimal.Zero, false
	}
}

// Compare orders two cell values for sorting: nulls sort last, numbers
// compare numerically, times chronologically, everything else by string
// form.
func Compare(a, b any) int {
	aNull, bNull := IsNull(a), IsNull(b)
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1
	case bNull:
		return -1
	}

	if an, aok := isNumeric(a); aok {
		if bn, bok := isNumeric(b); bok {
			return an.Cmp(bn)
		}
	}

	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			return at.Compare(bt)
		}
	}

	as, bs := ToString(a), ToString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
