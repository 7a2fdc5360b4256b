package benchmark_test

import (
	"fmt"
	"testing"

	"github.com/hupe1980/pointbsp"
	"github.com/hupe1980/pointbsp/geom"
	"github.com/hupe1980/pointbsp/pointset"
	"github.com/hupe1980/pointbsp/testutil"
)

// buildTree builds a tree over num points of the given distribution.
func buildTree(b *testing.B, num, maxLeafSize int, cloud func(int) []geom.Vec3) *pointbsp.Tree {
	b.Helper()

	tree := pointbsp.New(pointset.Slice(cloud(num)))
	if _, err := tree.Build(maxLeafSize, 32); err != nil {
		b.Fatal(err)
	}
	return tree
}

func queryPoints(rng *testutil.RNG, num int) []geom.Vec3 {
	return rng.UniformCloud(num)
}

func BenchmarkBuild(b *testing.B) {
	rng := testutil.NewRNG(1)

	for _, num := range []int{1000, 10000, 100000} {
		points := pointset.Slice(rng.UniformCloud(num))

		b.Run(fmt.Sprintf("n=%d", num), func(b *testing.B) {
			tree := pointbsp.New(points)
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := tree.Build(8, 32); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkNearest(b *testing.B) {
	rng := testutil.NewRNG(2)
	queries := queryPoints(rng, 1024)

	for _, num := range []int{1000, 100000} {
		for _, dist := range []struct {
			name  string
			cloud func(int) []geom.Vec3
		}{
			{"Uniform", rng.UniformCloud},
			{"Clustered", func(n int) []geom.Vec3 { return rng.ClusteredCloud(n, 16, 0.02) }},
		} {
			b.Run(fmt.Sprintf("%s/n=%d", dist.name, num), func(b *testing.B) {
				tree := buildTree(b, num, 8, dist.cloud)
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := tree.Nearest(queries[i%len(queries)]); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkKNearest(b *testing.B) {
	rng := testutil.NewRNG(3)
	queries := queryPoints(rng, 1024)
	tree := buildTree(b, 100000, 8, rng.UniformCloud)

	for _, k := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("k=%d", k), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := tree.KNearest(queries[i%len(queries)], k); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBall(b *testing.B) {
	rng := testutil.NewRNG(4)
	queries := queryPoints(rng, 1024)
	tree := buildTree(b, 100000, 8, rng.UniformCloud)

	for _, radius := range []float64{0.01, 0.1, 0.5} {
		b.Run(fmt.Sprintf("r=%g", radius), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := tree.Ball(queries[i%len(queries)], radius); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLeafSize(b *testing.B) {
	rng := testutil.NewRNG(5)
	queries := queryPoints(rng, 1024)

	// Smaller leaves prune better but cost more node descents per query.
	for _, maxLeafSize := range []int{1, 8, 32, 128} {
		b.Run(fmt.Sprintf("maxLeafSize=%d", maxLeafSize), func(b *testing.B) {
			tree := buildTree(b, 100000, maxLeafSize, rng.UniformCloud)
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := tree.Nearest(queries[i%len(queries)]); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
