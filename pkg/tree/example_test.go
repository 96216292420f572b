package tree_test

import (
	"fmt"

	"github.com/matzehuels/codecity/pkg/tree"
	"gonum.org/v1/gonum/spatial/r3"
)

func ExampleTree_Add() {
	t := tree.New()
	pkg, _ := t.Add(tree.Node{ID: "org.example"}, tree.NoParent)
	_, _ = t.Add(tree.Node{ID: "Main", Leaf: true, Size: r3.Vec{X: 2, Y: 5, Z: 2}}, pkg)
	_, _ = t.Add(tree.Node{ID: "Util", Leaf: true, Size: r3.Vec{X: 1, Y: 1, Z: 1}}, pkg)

	fmt.Println("Nodes:", t.Len())
	fmt.Println("Leaves:", len(t.Leaves()))
	fmt.Println("Children of org.example:", len(t.Node(pkg).Children))
	// Output:
	// Nodes: 3
	// Leaves: 2
	// Children of org.example: 2
}

func ExampleNewForest() {
	t, _ := tree.FromOutline("root{a{a1,a2},b{b1}}", r3.Vec{X: 1, Y: 1, Z: 1})

	f, _ := tree.Whole(t)
	fmt.Println(f)

	leaves, _ := tree.NewForest(t, t.Leaves())
	fmt.Println(leaves)
	// Output:
	// forest(6 nodes, 1 roots, depth 2)
	// forest(3 nodes, 3 roots, depth 0)
}
