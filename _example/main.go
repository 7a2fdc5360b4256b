package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hupe1980/pointbsp"
	"github.com/hupe1980/pointbsp/pointset"
	"github.com/hupe1980/pointbsp/testutil"
)

func main() {
	seed := int64(4711)
	size := 500000
	k := 10

	rng := testutil.NewRNG(seed)
	points := pointset.Slice(rng.UniformCloud(size))

	tree := pointbsp.New(points)

	fmt.Println("--- Build ---")
	fmt.Println("Size:", size)

	start := time.Now()

	nodes, err := tree.Build(8, 32)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Nodes:", nodes)
	fmt.Println("Stats:", tree.Stats())
	fmt.Println("Took:", time.Since(start))

	fmt.Println("--- Query ---")

	query := rng.Vec3()
	start = time.Now()

	res, err := tree.KNearest(query, k)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Took:", time.Since(start))
	fmt.Println("Leaf visits:", res.LeafVisits)

	for i, n := range res.Neighbors {
		fmt.Printf("%d. id=%d distance=%.6f\n", i+1, n.ID, n.Distance)
	}
}
