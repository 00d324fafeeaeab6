package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot documents arrive from the store with loosely typed fields: amounts may
// be doubles, ints or strings, dates may be native timestamps or formatted strings.
// Malformed values coerce to zero values instead of raising errors.

// CoerceDecimal converts an arbitrary field value to a decimal amount.
// Non-numeric and missing values become zero.
func CoerceDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case float64:
		return decimal.NewFromFloat(val)
	case float32:
		return decimal.NewFromFloat32(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case int32:
		return decimal.NewFromInt32(val)
	case int64:
		return decimal.NewFromInt(val)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// CoerceInt converts an arbitrary field value to an int, defaulting to zero.
func CoerceInt(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int32:
		return int(val)
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// CoerceString converts an arbitrary field value to a string, defaulting to empty.
func CoerceString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return ""
	}
}

// CoerceTime converts an arbitrary field value to a timestamp. The second return
// reports whether the value was parseable; date-filtered aggregations exclude
// records whose dates fail to parse.
func CoerceTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, !val.IsZero()
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, false
		}
		return *val, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case int64:
		// Milliseconds since epoch, the store's raw timestamp form.
		return time.UnixMilli(val), true
	case float64:
		// Epoch milliseconds again: JSON decoding of a locally cached
		// snapshot turns the raw int64 into a float64.
		return time.UnixMilli(int64(val)), true
	default:
		return time.Time{}, false
	}
}
