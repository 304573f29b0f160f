// ABOUTME: Lazy root-to-leaf branch enumeration over document trees
// ABOUTME: Sequences expand element-wise, mappings descend per key

package flatten

import (
	"iter"
	"slices"

	"github.com/nainya/docsearch/pkg/document"
)

// Branch is one root-to-leaf path: the keys from the root plus the leaf.
// Every element of a list leaf produces its own branch sharing the parent's
// key path.
type Branch struct {
	Keys []string
	Leaf document.Scalar
}

// Flatten enumerates every branch of v permitted by rule. The sequence is
// lazy and restartable; the caller may stop consuming at any point.
func Flatten(v document.Value, rule *Rule) iter.Seq[Branch] {
	return func(yield func(Branch) bool) {
		walk(v, rule, nil, yield)
	}
}

func walk(v document.Value, rule *Rule, prefix []string, yield func(Branch) bool) bool {
	if rule != nil && rule.kind == ruleExclude {
		return true
	}
	switch t := v.(type) {
	case document.Mapping:
		for _, f := range t {
			child, descend := rule.child(f.Key)
			if !descend {
				continue
			}
			if !walk(f.Value, child, append(prefix, f.Key), yield) {
				return false
			}
		}
	case document.Sequence:
		// Lists are transparent: elements inherit the prefix and rule.
		for _, e := range t {
			if !walk(e, rule, prefix, yield) {
				return false
			}
		}
	case document.Scalar:
		return yield(Branch{Keys: slices.Clone(prefix), Leaf: t})
	}
	return true
}
