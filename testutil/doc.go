// Package testutil provides testing utilities for pointbsp.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random point clouds and brute-force
// reference searches to verify tree answers against.
//
// # Random Point Clouds
//
//	rng := testutil.NewRNG(seed)
//	cloud := rng.UniformCloud(1000)            // uniform in the unit cube
//	cloud = rng.ClusteredCloud(1000, 8, 0.05)  // clustered around centroids
//	cloud = rng.PlanarCloud(1000, 2, 0.5)      // degenerate on one axis
//
// # Exact Search (Ground Truth)
//
//	best, ok := testutil.ExactNearest(points, query)
//	top := testutil.ExactKNearest(points, query, k)
//	ids := testutil.ExactBall(points, query, radius)
package testutil
