package pointbsp

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/pointbsp/blobstore"
	"github.com/hupe1980/pointbsp/geom"
	"github.com/hupe1980/pointbsp/pointset"
	"github.com/hupe1980/pointbsp/snapshot"
)

// SaveToWriter writes a snapshot of the built tree to w.
func (t *Tree) SaveToWriter(w io.Writer, optFns ...func(o *snapshot.Options)) error {
	if t.root == nil {
		return ErrEmptyIndex
	}

	err := snapshot.Write(w, t.toSnapshot(), optFns...)
	t.logger.LogSnapshot("save", "", err)
	return err
}

// SaveToFile writes a snapshot of the built tree to the given file.
func (t *Tree) SaveToFile(filename string, optFns ...func(o *snapshot.Options)) error {
	if t.root == nil {
		return ErrEmptyIndex
	}

	err := t.saveToFile(filename, optFns)
	t.logger.LogSnapshot("save", filename, err)
	return err
}

func (t *Tree) saveToFile(filename string, optFns []func(o *snapshot.Options)) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := snapshot.Write(f, t.toSnapshot(), optFns...); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// SaveToStore writes a snapshot of the built tree to a blob store under the
// given name.
func (t *Tree) SaveToStore(ctx context.Context, store blobstore.Store, name string, optFns ...func(o *snapshot.Options)) error {
	if t.root == nil {
		return ErrEmptyIndex
	}

	err := t.saveToStore(ctx, store, name, optFns)
	t.logger.LogSnapshot("save", name, err)
	return err
}

func (t *Tree) saveToStore(ctx context.Context, store blobstore.Store, name string, optFns []func(o *snapshot.Options)) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}

	if err := snapshot.Write(w, t.toSnapshot(), optFns...); err != nil {
		_ = w.Abort()
		return err
	}

	return w.Close()
}

// Load reads a snapshot from r and reconstructs the tree without rebuilding.
// The point set is used only to resolve canonical positions for Nearest
// results; it must be the set the snapshot was built from.
func Load(r io.Reader, points pointset.PointSet, optFns ...Option) (*Tree, error) {
	snap, err := snapshot.Read(r)
	if err != nil {
		return nil, err
	}

	return fromSnapshot(snap, points, optFns)
}

// LoadFromFile reads a snapshot file through a read-only memory mapping and
// reconstructs the tree without rebuilding.
func LoadFromFile(filename string, points pointset.PointSet, optFns ...Option) (*Tree, error) {
	snap, err := snapshot.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return fromSnapshot(snap, points, optFns)
}

// LoadFromStore reads a snapshot blob from a store and reconstructs the tree.
func LoadFromStore(ctx context.Context, store blobstore.Store, name string, points pointset.PointSet, optFns ...Option) (*Tree, error) {
	r, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return Load(r, points, optFns...)
}

func (t *Tree) toSnapshot() *snapshot.Snapshot {
	snap := &snapshot.Snapshot{
		Elements: make([]snapshot.Element, len(t.elements)),
	}
	for i, e := range t.elements {
		snap.Elements[i] = snapshot.Element{ID: e.id, Position: [3]float64(e.position)}
	}

	snap.Root = toSnapshotNode(t.root)
	return snap
}

func toSnapshotNode(n *node) *snapshot.Node {
	if n.isLeaf() {
		return &snapshot.Node{}
	}
	return &snapshot.Node{
		Axis:  n.axis,
		Split: n.split,
		Mid:   n.left.end,
		Left:  toSnapshotNode(n.left),
		Right: toSnapshotNode(n.right),
	}
}

func fromSnapshot(snap *snapshot.Snapshot, points pointset.PointSet, optFns []Option) (*Tree, error) {
	if snap.Root == nil {
		return nil, fmt.Errorf("%w: snapshot holds no tree", snapshot.ErrMalformed)
	}

	opts := applyOptions(optFns)

	t := &Tree{
		points:   points,
		elements: make([]element, len(snap.Elements)),
		logger:   opts.logger,
		metrics:  opts.metrics,
	}
	for i, e := range snap.Elements {
		t.elements[i] = element{position: geom.Vec3(e.Position), id: e.ID}
	}

	t.root = fromSnapshotNode(snap.Root, 0, len(t.elements), &t.nodeCount)
	return t, nil
}

func fromSnapshotNode(sn *snapshot.Node, begin, end int, nodeCount *int) *node {
	n := &node{begin: begin, end: end}
	if sn.Left == nil {
		return n
	}

	n.axis = sn.Axis
	n.split = sn.Split

	*nodeCount += 2
	n.left = fromSnapshotNode(sn.Left, begin, sn.Mid, nodeCount)
	n.right = fromSnapshotNode(sn.Right, sn.Mid, end, nodeCount)

	return n
}
