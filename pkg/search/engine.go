// ABOUTME: Schema-less document search engine
// ABOUTME: Inverted branch index answering partial nested equality filters

package search

import (
	"fmt"
	"iter"
	"time"

	"github.com/nainya/docsearch/internal/logger"
	"github.com/nainya/docsearch/internal/metrics"
	"github.com/nainya/docsearch/pkg/document"
	"github.com/nainya/docsearch/pkg/flatten"
	"github.com/nainya/docsearch/pkg/pathhash"
)

// Engine answers membership queries over an indexed document collection.
// All state is built once by New and never mutated afterwards, so any
// number of goroutines may call Find, Check and Size concurrently.
type Engine struct {
	hasher   pathhash.Hasher
	idKey    string
	ids      idSet
	index    map[uint64]idSet
	included map[uint64]bool // nil when no include rule was supplied
	log      *logger.Logger
	met      *metrics.Metrics
}

// New indexes docs and returns a ready engine. Documents are read-only to
// the engine; only ids and branch hashes are retained. A document without
// the reserved id field aborts construction with document.ErrMissingID.
func New(docs []document.Mapping, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	e := &Engine{
		hasher: cfg.hasher,
		idKey:  cfg.idKey,
		log:    cfg.log,
	}
	if cfg.reg != nil {
		e.met = metrics.NewMetrics(cfg.reg)
	}

	e.log.Debug("building index").Int("documents", len(docs)).Send()
	start := time.Now()
	ids, index, included, err := buildIndex(docs, cfg.include, cfg.hasher, cfg.idKey)
	if err != nil {
		return nil, err
	}
	e.ids, e.index, e.included = ids, index, included

	elapsed := time.Since(start)
	e.log.LogIndexBuild(len(ids), len(index), elapsed)
	if e.met != nil {
		e.met.RecordBuild(len(ids), len(index), len(included), elapsed)
	}
	return e, nil
}

// Size returns the number of indexed documents.
func (e *Engine) Size() int {
	return len(e.ids)
}

// Check reports whether filter is valid and supported by the index. A nil
// or empty filter is always valid and selects every document.
func (e *Engine) Check(filter document.Mapping) error {
	if len(filter) == 0 {
		return nil
	}
	if err := validFilter(filter); err != nil {
		if e.met != nil {
			e.met.RecordRejection("invalid")
		}
		return err
	}
	if err := e.filterSupported(filter); err != nil {
		if e.met != nil {
			e.met.RecordRejection("unsupported")
		}
		return err
	}
	return nil
}

// Find returns the ids of every indexed document matching filter. The
// sequence is lazy and restartable; each call evaluates independently and
// stops as soon as the running intersection empties. Validation failures
// surface before any sequence is returned.
func (e *Engine) Find(filter document.Mapping) (iter.Seq[any], error) {
	start := time.Now()
	if err := e.Check(filter); err != nil {
		e.log.LogQuery(time.Since(start), err)
		if e.met != nil {
			e.met.RecordFind("rejected", time.Since(start))
		}
		return nil, err
	}
	e.log.LogQuery(time.Since(start), nil)
	if e.met != nil {
		e.met.RecordFind("ok", time.Since(start))
	}

	if len(filter) == 0 {
		return func(yield func(any) bool) {
			for id := range e.ids {
				if !yield(id) {
					return
				}
			}
		}, nil
	}

	return func(yield func(any) bool) {
		var result idSet
		first := true
		for branch := range flatten.Flatten(filter, nil) {
			candidates := e.index[e.hasher.HashBranch(branch.Keys, branch.Leaf)]
			if first {
				result, first = candidates, false
			} else {
				result = intersect(result, candidates)
			}
			if len(result) == 0 {
				return
			}
		}
		if first {
			return
		}
		for id := range result {
			if !yield(id) {
				return
			}
		}
	}, nil
}

// validFilter rejects any filter containing a sequence value. Flattening a
// list-valued filter would turn the exact-match constraint into a
// per-element membership OR, so the shape is disallowed outright.
func validFilter(m document.Mapping) error {
	for _, f := range m {
		switch v := f.Value.(type) {
		case document.Sequence:
			return fmt.Errorf("%w: list value under key %q", ErrInvalidFilter, f.Key)
		case document.Mapping:
			if err := validFilter(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// filterSupported checks every filter branch against the included-paths
// table. A branch is supported when some shrinking prefix of its key path,
// from the full prefix down to the empty one, carries a truthy inclusion
// entry. An explicit false entry does not stop the walk; a shorter truthy
// prefix can still accept the branch.
func (e *Engine) filterSupported(filter document.Mapping) error {
	if e.included == nil {
		return nil
	}
	for branch := range flatten.Flatten(filter, nil) {
		supported := false
		for i := len(branch.Keys); i >= 0; i-- {
			if e.included[e.hasher.HashPath(branch.Keys[:i])] {
				supported = true
				break
			}
		}
		if !supported {
			return fmt.Errorf("%w: %v", ErrUnsupportedFilter, filter)
		}
	}
	return nil
}
