package report

import (
	"context"
	"errors"

	"github.com/google/btree"

	"github.com/yairfalse/awsls/internal/provider"
	"github.com/yairfalse/awsls/pkg/resource"
)

// columner is any resource view that can render a named column.
type columner interface {
	Column(name string) (string, bool)
}

// cells renders header against views, taking each column from the first
// view that knows it. Nil views are skipped and unknown columns are empty.
func cells(header []string, views ...columner) []string {
	row := make([]string, len(header))
	for i, name := range header {
		for _, v := range views {
			if v == nil {
				continue
			}
			if value, ok := v.Column(name); ok {
				row[i] = value
				break
			}
		}
	}
	return row
}

// describeAll fetches one document per id, in order. A missing primary
// resource is an error.
func describeAll(ctx context.Context, src provider.Source, kind resource.Kind, ids []string) ([]*resource.Document, error) {
	docs := make([]*resource.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := src.Describe(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func describeInstances(ctx context.Context, src provider.Source, ids []string) ([]resource.Instance, error) {
	docs, err := describeAll(ctx, src, resource.KindInstance, ids)
	if err != nil {
		return nil, err
	}
	instances := make([]resource.Instance, len(docs))
	for i, doc := range docs {
		instances[i] = resource.AsInstance(doc)
	}
	return instances, nil
}

// idSet is a sorted set of resource ids.
type idSet struct {
	tree *btree.BTreeG[string]
}

func newIDSet() *idSet {
	return &idSet{tree: btree.NewG[string](2, func(a, b string) bool { return a < b })}
}

// Add inserts the non-empty ids.
func (s *idSet) Add(ids ...string) {
	for _, id := range ids {
		if id != "" {
			s.tree.ReplaceOrInsert(id)
		}
	}
}

func (s *idSet) Len() int {
	return s.tree.Len()
}

// Each visits the ids in ascending order until fn returns false.
func (s *idSet) Each(fn func(id string) bool) {
	s.tree.Ascend(btree.ItemIteratorG[string](fn))
}

// Slice returns the ids in ascending order.
func (s *idSet) Slice() []string {
	out := make([]string, 0, s.Len())
	s.Each(func(id string) bool {
		out = append(out, id)
		return true
	})
	return out
}

// lookupTable describes every id of the set once. Ids the provider no
// longer knows are left out so rows joining them render empty cells.
func lookupTable(ctx context.Context, src provider.Source, kind resource.Kind, ids *idSet) (map[string]*resource.Document, error) {
	docs := make(map[string]*resource.Document, ids.Len())
	var err error
	ids.Each(func(id string) bool {
		doc, derr := src.Describe(ctx, kind, id)
		var notFound *resource.NotFoundError
		switch {
		case errors.As(derr, &notFound):
			return true
		case derr != nil:
			err = derr
			return false
		}
		docs[id] = doc
		return true
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}
