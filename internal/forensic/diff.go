package forensic

import (
	"fmt"

	"github.com/ziadkadry99/doc-forensics/internal/docval"
)

// rawChange is one delta found by the structural walk, before
// classification and scoring. Missing sides are represented by nil
// pointers so absent and null stay distinguishable.
type rawChange struct {
	path string
	base ChangeType
	old  *docval.Value
	new  *docval.Value
}

// deepCompare walks both trees in lockstep keyed by path. Maps diff over
// the union of keys; lists align strictly by index, so a mid-list
// insertion or reorder cascades into changes for every subsequent index.
func deepCompare(doc1, doc2 docval.Value) []rawChange {
	var changes []rawChange
	compareValues("", doc1, doc2, &changes)
	return changes
}

func compareValues(path string, v1, v2 docval.Value, out *[]rawChange) {
	if v1.Kind() != v2.Kind() {
		// A type mismatch is one change; recursing into incomparable
		// shapes would fabricate deltas. Swapping container kinds is a
		// structural rewrite rather than a value edit.
		base := ChangeModification
		if isContainer(v1) && isContainer(v2) {
			base = ChangeStructural
		}
		*out = append(*out, rawChange{path: path, base: base, old: &v1, new: &v2})
		return
	}

	switch v1.Kind() {
	case docval.KindMap:
		m1, m2 := v1.MapValue(), v2.MapValue()
		for _, key := range unionKeys(v1, v2) {
			childPath := joinPath(path, key)
			c1, in1 := m1[key]
			c2, in2 := m2[key]
			switch {
			case in1 && in2:
				compareValues(childPath, c1, c2, out)
			case in2:
				*out = append(*out, rawChange{path: childPath, base: ChangeAddition, new: &c2})
			default:
				*out = append(*out, rawChange{path: childPath, base: ChangeDeletion, old: &c1})
			}
		}
	case docval.KindList:
		l1, l2 := v1.ListValue(), v2.ListValue()
		max := len(l1)
		if len(l2) > max {
			max = len(l2)
		}
		for i := 0; i < max; i++ {
			childPath := fmt.Sprintf("%s[%d]", path, i)
			switch {
			case i < len(l1) && i < len(l2):
				compareValues(childPath, l1[i], l2[i], out)
			case i < len(l2):
				item := l2[i]
				*out = append(*out, rawChange{path: childPath, base: ChangeAddition, new: &item})
			default:
				item := l1[i]
				*out = append(*out, rawChange{path: childPath, base: ChangeDeletion, old: &item})
			}
		}
	default:
		if !v1.Equal(v2) {
			*out = append(*out, rawChange{path: path, base: ChangeModification, old: &v1, new: &v2})
		}
	}
}

func isContainer(v docval.Value) bool {
	return v.Kind() == docval.KindList || v.Kind() == docval.KindMap
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// unionKeys merges the sorted key sets of two maps.
func unionKeys(v1, v2 docval.Value) []string {
	k1 := v1.SortedKeys()
	k2 := v2.SortedKeys()
	merged := make([]string, 0, len(k1)+len(k2))
	i, j := 0, 0
	for i < len(k1) && j < len(k2) {
		switch {
		case k1[i] == k2[j]:
			merged = append(merged, k1[i])
			i++
			j++
		case k1[i] < k2[j]:
			merged = append(merged, k1[i])
			i++
		default:
			merged = append(merged, k2[j])
			j++
		}
	}
	merged = append(merged, k1[i:]...)
	merged = append(merged, k2[j:]...)
	return merged
}

// lcsRatio is a longest-common-subsequence similarity over the canonical
// serializations of both trees: 2*LCS / (len1+len2). It is continuous and
// independent of the structured diff. Quadratic in input size, with an
// equality short-circuit for the common identical case.
func lcsRatio(a, b []byte) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if string(a) == string(b) {
		return 1.0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(b)]
	return 2 * float64(lcs) / float64(len(a)+len(b))
}
