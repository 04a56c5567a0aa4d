package chainz

import "fmt"

// StageKind identifies the variant of a chain stage. The executor keys its
// scheduling decisions off the kind: only Map, Filter, and FlatMap stages
// may fan out across workers in parallel mode, and Reverse is the only
// stage applied in place.
type StageKind uint8

const (
	// KindMap transforms each element, possibly changing the element type.
	KindMap StageKind = iota
	// KindFilter drops elements whose predicate returns false.
	KindFilter
	// KindTake truncates to the first n elements, saturating at the
	// collection length.
	KindTake
	// KindSkip drops the first n elements, saturating at the collection
	// length.
	KindSkip
	// KindReverse reverses element order in place.
	KindReverse
	// KindFlatMap maps each element to a sub-slice and concatenates the
	// results in source order.
	KindFlatMap
	// KindSort stable-sorts the collection.
	KindSort
	// KindCustom applies a caller-supplied whole-collection function. It is
	// the escape hatch for composite steps and reductions.
	KindCustom
)

// String returns the lowercase stage kind name used in stage names, span
// tags, and error paths.
func (k StageKind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindFilter:
		return "filter"
	case KindTake:
		return "take"
	case KindSkip:
		return "skip"
	case KindReverse:
		return "reverse"
	case KindFlatMap:
		return "flatmap"
	case KindSort:
		return "sort"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ParallelEligible reports whether stages of this kind may be partitioned
// across workers. Eligible stages are element-wise and order-independent
// within a chunk; everything else forces a synchronization barrier.
// Custom is treated conservatively as non-parallelizable because the
// executor cannot see inside the caller's whole-collection function.
func (k StageKind) ParallelEligible() bool {
	return k == KindMap || k == KindFilter || k == KindFlatMap
}

// StageInfo describes one appended stage for introspection. The stage's
// typed closure is not exposed; it is erased behind the chain's composed
// evaluation function.
type StageInfo struct {
	Kind StageKind
	Name Name
}

// stageName derives the default name for the stage at position index.
// Custom stages carry caller-supplied names instead.
func stageName(kind StageKind, index int) Name {
	return Name(fmt.Sprintf("%s[%d]", kind, index))
}
