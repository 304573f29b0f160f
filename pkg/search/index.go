// ABOUTME: Index construction over a document collection
// ABOUTME: Produces the id set, branch-hash postings and included-paths table

package search

import (
	"fmt"

	"github.com/nainya/docsearch/pkg/document"
	"github.com/nainya/docsearch/pkg/flatten"
	"github.com/nainya/docsearch/pkg/pathhash"
)

// idSet holds document identifiers. Ids are whatever comparable scalar type
// the documents used; the engine never inspects them.
type idSet map[any]struct{}

// buildIndex walks every document once, recording its id and the hash of
// each branch the include rule permits. When a rule is supplied its
// controlled prefixes are recorded for filter validation; otherwise the
// included table stays nil and validation always passes.
func buildIndex(docs []document.Mapping, include *flatten.Rule, hasher pathhash.Hasher, idKey string) (idSet, map[uint64]idSet, map[uint64]bool, error) {
	ids := make(idSet)
	index := make(map[uint64]idSet)

	var included map[uint64]bool
	if include != nil {
		included = make(map[uint64]bool)
		include.Prefixes(func(keys []string, ok bool) bool {
			included[hasher.HashPath(keys)] = ok
			return true
		})
	}

	for i, doc := range docs {
		id, err := document.ExtractID(doc, idKey)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("search: document %d: %w", i, err)
		}
		ids[id] = struct{}{}
		for branch := range flatten.Flatten(doc, include) {
			h := hasher.HashBranch(branch.Keys, branch.Leaf)
			set, ok := index[h]
			if !ok {
				set = make(idSet)
				index[h] = set
			}
			set[id] = struct{}{}
		}
	}
	return ids, index, included, nil
}

// intersect returns the ids present in both sets without touching either.
func intersect(a, b idSet) idSet {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(idSet, len(a))
	for id := range a {
		if _, ok := b[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}
