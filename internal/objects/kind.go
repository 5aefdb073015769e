package objects

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the declared type of a property value.
type Kind int

const (
	Text Kind = iota
	Integer
	Timestamp
	Enum
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Timestamp:
		return "timestamp"
	case Enum:
		return "enumerated-integer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type transform func(any) (any, error)

// transforms is the coercion chain applied before a value is type checked.
func (k Kind) transforms() []transform {
	switch k {
	case Integer, Enum:
		return []transform{toInteger}
	case Timestamp:
		return []transform{toInteger, fromEpoch}
	default:
		return []transform{toText}
	}
}

func (k Kind) accepts(v any) bool {
	switch k {
	case Integer, Enum:
		_, ok := v.(int64)
		return ok
	case Timestamp:
		_, ok := v.(time.Time)
		return ok
	default:
		_, ok := v.(string)
		return ok
	}
}

func toText(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case fmt.Stringer:
		return t.String(), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(t), nil
	case nil:
		return nil, fmt.Errorf("no value")
	default:
		return nil, fmt.Errorf("cannot convert %T to text", v)
	}
}

func toInteger(v any) (any, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return nil, fmt.Errorf("%d overflows int64", t)
		}
		return int64(t), nil
	case float32:
		return truncate(float64(t))
	case float64:
		return truncate(t)
	case bool:
		if t {
			return int64(1), nil
		}
		return int64(0), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return truncate(f)
	case string:
		return strconv.ParseInt(strings.TrimSpace(t), 10, 64)
	case nil:
		return nil, fmt.Errorf("no value")
	default:
		return nil, fmt.Errorf("cannot convert %T to integer", v)
	}
}

func truncate(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, fmt.Errorf("%v is not a representable integer", f)
	}
	return int64(f), nil
}

// fromEpoch reads an integer as seconds since the Unix epoch, in UTC.
func fromEpoch(v any) (any, error) {
	n, ok := v.(int64)
	if !ok {
		return nil, fmt.Errorf("%v is not an epoch", v)
	}
	return time.Unix(n, 0).UTC(), nil
}
