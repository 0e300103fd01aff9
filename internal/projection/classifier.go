// filepath: internal/projection/classifier.go
package projection

// Class is the coarse asymptotic growth classification shown as a badge
// next to the forecast chart.
type Class string

const (
	ClassBounded         Class = "bounded"
	ClassLinearEfficient Class = "linear_efficient"
	ClassLinear          Class = "linear"
)

// ClassInfo bundles a Class with its display label, explanation and chart
// color. The color carries no algorithmic meaning.
type ClassInfo struct {
	Class       Class  `json:"class"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

var classInfos = map[Class]ClassInfo{
	ClassBounded: {
		Class:       ClassBounded,
		Label:       "Bounded",
		Description: "Storage is capped: old data is deleted after the retention window and total size stabilizes.",
		Color:       "#4caf50",
	},
	ClassLinearEfficient: {
		Class:       ClassLinearEfficient,
		Label:       "Linear (efficient)",
		Description: "Live data is bounded by the archive window; daily aggregates accumulate indefinitely at a small fraction of the raw rate.",
		Color:       "#ff9800",
	},
	ClassLinear: {
		Class:       ClassLinear,
		Label:       "Linear",
		Description: "All raw samples are kept forever; storage grows linearly with time and device count.",
		Color:       "#f44336",
	},
}

// Classify maps a policy to its growth class. This is a pure lookup on the
// toggles and never inspects an Estimate or runs the simulation.
//
// Only the toggles are checked, not whether the windows make the policy
// effective. Archival enabled with archiveDays=0 simulates as unconstrained
// growth yet still gets the linear_efficient badge. That mismatch is
// intentional and kept as-is; see the classifier tests.
func Classify(p Policy) ClassInfo {
	switch {
	case p.DeleteEnabled:
		return classInfos[ClassBounded]
	case p.ArchiveEnabled:
		return classInfos[ClassLinearEfficient]
	default:
		return classInfos[ClassLinear]
	}
}
