package dataset

// Kind is the semantic classification of a column that decides which filter
// widget and predicate apply to it.
type Kind int

const (
	KindCategorical Kind = iota
	KindNumeric
	KindTemporal
	KindTextual
)

// DefaultCategoricalThreshold is the distinct-value count below which any
// column is treated as categorical.
const DefaultCategoricalThreshold = 10

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindCategorical:
		return "categorical"
	case KindNumeric:
		return "numeric"
	case KindTemporal:
		return "temporal"
	case KindTextual:
		return "textual"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindCategorical, KindNumeric, KindTemporal, KindTextual} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Classify returns the kind of a column. The checks run in a fixed order:
// categorical storage or fewer than threshold distinct non-null values wins
// over numeric, which wins over temporal, which wins over textual.
// A threshold <= 0 selects DefaultCategoricalThreshold.
func Classify(c Column, threshold int) Kind {
	if threshold <= 0 {
		threshold = DefaultCategoricalThreshold
	}
	if c.Type == TypeCategory || CountDistinct(c) < threshold {
		return KindCategorical
	}
	switch c.Type {
	case TypeFloat:
		return KindNumeric
	case TypeTime:
		return KindTemporal
	default:
		return KindTextual
	}
}
