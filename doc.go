// Package strand draws assembly graphs for [Ebitengine]: each node is a
// contour (a polyline) rendered as a thick ribbon, and links join contour
// endpoints. When a graph arrives without links they are inferred from
// geometry with a Kruskal-style pass over endpoint distances.
//
// # Quick start
//
// [Run] opens a window and drives a [Diagram]:
//
//	d := strand.NewDiagram(1024, 768, strand.DefaultSettings())
//	if _, err := d.LoadFile("graph.json"); err != nil {
//		log.Fatal(err)
//	}
//	strand.Run(d, strand.RunConfig{Title: "graph"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Diagram.Update] and [Diagram.Draw] directly.
//
// # Graph input
//
// [ParseGraph] reads JSON of the form
//
//	{"nodes": [{"id": "1", "points": [[0,0],[10,5]]}],
//	 "links": [{"source": "1", "target": "2", "fromOrient": "+", "toOrient": "-"}]}
//
// Nodes without "x"/"y" are centered on their contour centroid. A missing
// "links" key asks for inference; an empty list means no links.
//
// # Links and anchors
//
// Every link endpoint is stored once, in the [AnchorCache], as an offset
// from its node's position. Dragging a node only translates it, so a link
// is redrawn in constant time as position plus offset.
//
// # Interaction
//
// Pointer-down on a node starts a drag that moves the node through the
// [Registry], which accepts position writes from the dragged node only.
// Pointer-down on empty canvas pans and the wheel zooms about the cursor.
// The [Viewport] is suspended while a node is held.
//
// Headless runs drive the same state machine through InjectPress,
// InjectMove, InjectRelease and JSON scripts loaded with [LoadTestScript].
//
// [Ebitengine]: https://ebitengine.org
package strand
