package analysis

import "github.com/Jai-Chauhan/SCT-DS-2/internal/dataset"

// DefaultTargets is the fixed-priority list of recognized outcome columns.
var DefaultTargets = []string{"Survived", "Outcome"}

// DetectTarget returns the first candidate that names a column of t.
func DetectTarget(t *dataset.Table, candidates []string) (string, bool) {
	for _, name := range candidates {
		if t.Has(name) {
			return name, true
		}
	}
	return "", false
}
