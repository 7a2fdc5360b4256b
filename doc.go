// Package pointbsp provides a binary space partition index over a static set
// of 3D points, supporting exact nearest-point, k-nearest-points and
// fixed-radius ("ball") queries.
//
// The index is build-once, query-many: Build copies the point set into a
// contiguous element buffer and recursively splits the longest bounding-box
// axis at its midpoint; queries run a branch-and-bound traversal over the
// resulting tree, pruning subtrees that provably cannot improve the answer.
// Once built, the tree is immutable and concurrent read-only queries are
// safe; a rebuild must be exclusive with respect to in-flight queries.
//
// # Quick Start
//
//	points := pointset.Slice{
//	    geom.V(0, 0, 0),
//	    geom.V(1, 0, 0),
//	    geom.V(0, 1, 0),
//	}
//
//	tree := pointbsp.New(points)
//	if _, err := tree.Build(10, 32); err != nil {
//	    panic(err)
//	}
//
//	res, err := tree.Nearest(geom.V(0.1, 0.1, 0.1))
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(res.ID, res.Distance)
//
// Queries accept an optional filter, e.g. backed by a Roaring bitmap:
//
//	allowed := roaring.BitmapOf(1, 2)
//	res, err := tree.Nearest(q, pointbsp.WithFilter(pointbsp.BitmapFilter(allowed)))
//
// Built trees can be persisted as compressed, checksummed snapshots (see
// SaveToFile/LoadFromFile) and published to blob storage (see the blobstore
// package).
package pointbsp
