package address

import (
	"strconv"
	"strings"

	"github.com/uaserve/uaserve-go/pkg/ua"
)

// Dimension is one bound of a numeric range. High == Low selects a single
// element.
type Dimension struct {
	Low  uint32
	High uint32
}

// NumericRange is a parsed OPC UA index range: one dimension per array
// dimension, each "<low>" or "<low>:<high>" with low < high.
type NumericRange struct {
	Dimensions []Dimension
}

// IsEmpty returns true when no range was specified.
func (r NumericRange) IsEmpty() bool {
	return len(r.Dimensions) == 0
}

// ParseNumericRange parses an index-range string. The empty string is the
// valid "no range" case. Malformed input returns BadIndexRangeInvalid.
func ParseNumericRange(s string) (NumericRange, ua.StatusCode) {
	if s == "" {
		return NumericRange{}, ua.Good
	}

	var r NumericRange
	for _, part := range strings.Split(s, ",") {
		dim, ok := parseDimension(part)
		if !ok {
			return NumericRange{}, ua.BadIndexRangeInvalid
		}
		r.Dimensions = append(r.Dimensions, dim)
	}
	return r, ua.Good
}

func parseDimension(s string) (Dimension, bool) {
	low, high, found := strings.Cut(s, ":")
	lo, err := parseBound(low)
	if err != nil {
		return Dimension{}, false
	}
	if !found {
		return Dimension{Low: lo, High: lo}, true
	}
	hi, err := parseBound(high)
	if err != nil || hi <= lo {
		return Dimension{}, false
	}
	return Dimension{Low: lo, High: hi}, true
}

func parseBound(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}
