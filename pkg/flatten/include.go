// ABOUTME: Include specification for selective indexing
// ABOUTME: Three-state rules deciding which subtrees produce branches

package flatten

import (
	"fmt"
	"slices"
	"sort"

	"github.com/nainya/docsearch/pkg/document"
)

type ruleKind int

const (
	ruleInclude ruleKind = iota
	ruleExclude
	ruleNarrow
)

// Rule decides whether a subtree is indexed. A nil *Rule means no
// restriction at all. An Exclude rule prunes its subtree. A Narrow rule
// lists the keys that may be descended into; once any key at a level is
// listed, every sibling absent from the map is excluded at that level.
type Rule struct {
	kind     ruleKind
	children map[string]*Rule
}

// IncludeAll returns a rule indexing the whole subtree beneath it.
func IncludeAll() *Rule { return &Rule{kind: ruleInclude} }

// Exclude returns a rule pruning the whole subtree beneath it.
func Exclude() *Rule { return &Rule{kind: ruleExclude} }

// Narrow returns a rule restricting descent to the listed keys.
func Narrow(children map[string]*Rule) *Rule {
	return &Rule{kind: ruleNarrow, children: children}
}

// RuleFromValue builds a Rule from a bool-leaf tree mirroring the document
// schema: a true leaf includes the subtree, a false leaf excludes it, and a
// mapping narrows to its listed keys. Any non-boolean scalar counts as
// included; sequences are not a valid rule shape.
func RuleFromValue(v document.Value) (*Rule, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case document.Scalar:
		if b, ok := t.Value().(bool); ok && !b {
			return Exclude(), nil
		}
		return IncludeAll(), nil
	case document.Mapping:
		children := make(map[string]*Rule, len(t))
		for _, f := range t {
			child, err := RuleFromValue(f.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", f.Key, err)
			}
			children[f.Key] = child
		}
		return Narrow(children), nil
	default:
		return nil, fmt.Errorf("flatten: sequence is not a valid include rule")
	}
}

// child returns the effective rule one level down under key and whether the
// key may be descended into at all. Narrowing excludes unlisted keys.
func (r *Rule) child(key string) (*Rule, bool) {
	if r == nil || r.kind == ruleInclude {
		return nil, true
	}
	if r.kind == ruleExclude {
		return nil, false
	}
	c, ok := r.children[key]
	if !ok {
		return nil, false
	}
	return c, true
}

// Prefixes calls fn for every explicitly controlled key prefix with its
// inclusion decision. Narrowed levels contribute their children's prefixes;
// Include and Exclude leaves contribute the prefix ending at them. fn
// returning false stops the walk.
func (r *Rule) Prefixes(fn func(keys []string, included bool) bool) {
	r.prefixes(nil, fn)
}

func (r *Rule) prefixes(prefix []string, fn func(keys []string, included bool) bool) bool {
	if r == nil {
		return true
	}
	switch r.kind {
	case ruleInclude:
		return fn(slices.Clone(prefix), true)
	case ruleExclude:
		return fn(slices.Clone(prefix), false)
	default:
		keys := make([]string, 0, len(r.children))
		for k := range r.children {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !r.children[k].prefixes(append(prefix, k), fn) {
				return false
			}
		}
		return true
	}
}
