package strand

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrUnknownNode is returned when an id is not present in the registry.
	ErrUnknownNode = errors.New("strand: unknown node")
	// ErrNotDragWriter is returned when a position write comes from anyone
	// other than the active drag session.
	ErrNotDragWriter = errors.New("strand: node position is owned by another writer")
)

// Node is one graph segment: a contour in node-local space placed at a
// model-space position. Absolute vertex position = Position() + point.
type Node struct {
	ID string

	points []Vec2 // node-local contour
	pos    Vec2
	order  int // index in load order

	// Shape cache, rebuilt when shapeDirty is set.
	outline    []Vec2
	vertices   []ebiten.Vertex
	indices    []uint16
	shapeDirty bool

	transformedVerts []ebiten.Vertex // preallocated draw buffer
}

// Points returns the node-local contour. The returned slice MUST NOT be mutated.
func (n *Node) Points() []Vec2 {
	return n.points
}

// Position returns the node's model-space position.
func (n *Node) Position() Vec2 {
	return n.pos
}

// Empty reports whether the node has no contour points.
func (n *Node) Empty() bool {
	return len(n.points) == 0
}

// AbsolutePoint converts a node-local point to model space.
func (n *Node) AbsolutePoint(p Vec2) Vec2 {
	return n.pos.Add(p)
}

// AbsolutePoints returns the contour in model space.
func (n *Node) AbsolutePoints() []Vec2 {
	out := make([]Vec2, len(n.points))
	for i, p := range n.points {
		out[i] = n.pos.Add(p)
	}
	return out
}

// Extremes returns the first and last contour points in model space.
// ok is false for an empty contour.
func (n *Node) Extremes() (first, last Vec2, ok bool) {
	if len(n.points) == 0 {
		return Vec2{}, Vec2{}, false
	}
	return n.pos.Add(n.points[0]), n.pos.Add(n.points[len(n.points)-1]), true
}

// Outline returns the cached thick outline in node-local space.
func (n *Node) Outline() []Vec2 {
	return n.outline
}

// Registry is the id-indexed node store for one graph load. Reads go through
// the registry by id; position writes are only accepted from the node that
// currently holds the write lock (the active drag session).
type Registry struct {
	nodes  map[string]*Node
	order  []*Node
	writer string
	locked bool
}

func newRegistry() *Registry {
	return &Registry{nodes: make(map[string]*Node)}
}

// add registers n. Returns false if the id is already taken.
func (r *Registry) add(n *Node) bool {
	if _, dup := r.nodes[n.ID]; dup {
		return false
	}
	n.order = len(r.order)
	r.nodes[n.ID] = n
	r.order = append(r.order, n)
	return true
}

// Get looks up a node by id.
func (r *Registry) Get(id string) (*Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return len(r.order)
}

// Nodes returns nodes in load order. The returned slice MUST NOT be mutated.
func (r *Registry) Nodes() []*Node {
	return r.order
}

// Position returns the current position of the node with the given id.
func (r *Registry) Position(id string) (Vec2, error) {
	n, ok := r.nodes[id]
	if !ok {
		return Vec2{}, fmt.Errorf("position %q: %w", id, ErrUnknownNode)
	}
	return n.pos, nil
}

// Writer returns the id holding the position write lock, if any.
func (r *Registry) Writer() (string, bool) {
	return r.writer, r.locked
}

// acquire gives id exclusive write access to its own position.
func (r *Registry) acquire(id string) error {
	if _, ok := r.nodes[id]; !ok {
		return fmt.Errorf("acquire %q: %w", id, ErrUnknownNode)
	}
	if r.locked && r.writer != id {
		return fmt.Errorf("acquire %q: %w", id, ErrNotDragWriter)
	}
	r.writer = id
	r.locked = true
	return nil
}

// release drops the write lock.
func (r *Registry) release() {
	r.writer = ""
	r.locked = false
}

// translate moves the node by (dx, dy). Only the lock holder may write.
func (r *Registry) translate(id string, dx, dy float64) error {
	if !r.locked || r.writer != id {
		return fmt.Errorf("translate %q: %w", id, ErrNotDragWriter)
	}
	n, ok := r.nodes[id]
	if !ok {
		return fmt.Errorf("translate %q: %w", id, ErrUnknownNode)
	}
	n.pos.X += dx
	n.pos.Y += dy
	return nil
}
