package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/leterax/voxelcore/pkg/voxel"
)

func main() {
	sizeX := flag.Int("x", 48, "grid size along X, in voxels")
	sizeY := flag.Int("y", 48, "grid size along Y, in voxels")
	sizeZ := flag.Int("z", 48, "grid size along Z, in voxels")
	sphere := flag.Bool("sphere", false, "generate a sphere instead of a hollow box")
	split := flag.Bool("split", false, "repeatedly split off disconnected regions and report each piece")
	flag.Parse()

	shape := [3]int{*sizeX, *sizeY, *sizeZ}

	var gen voxel.Generator
	if *sphere {
		gen = &voxel.SphereGenerator{Extent: 1, Shape: shape, TypeID: 1}
	} else {
		gen = &voxel.UniformBoxGenerator{Extent: 1, Shape: shape, TypeID: 1, Hollow: true, HollowN: 2}
	}

	obj := voxel.Generate(gen)
	report("initial", obj)

	if !*split {
		return
	}

	for i := 1; ; i++ {
		piece, ok := voxel.SplitOffAnyDisconnectedRegion(obj)
		if !ok {
			fmt.Println("no further disconnected regions")
			break
		}
		log.Printf("split #%d", i)
		report("remainder", obj)
		report("split-off piece", piece)
	}
}

func report(label string, o *voxel.Object) {
	counts := o.ChunkCounts()
	fmt.Printf("%s: chunks=%dx%dx%d stored_voxels=%d non_empty_voxels=%d regions=%d exposed_chunks=%d\n",
		label, counts[0], counts[1], counts[2],
		o.StoredVoxelCount(), o.CountNonEmptyVoxels(), o.CountRegions(), o.ExposedChunkCountHeuristic())
}
