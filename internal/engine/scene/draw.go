package scene

import (
	"sort"

	"github.com/Faultbox/wikiwalk/internal/engine/picking"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// Drawable is one bounded node flattened for the renderer.
type Drawable struct {
	Name        string
	Bounds      picking.AABB // world space
	Interactive InteractiveKind
	Render      RenderState
}

// Collect flattens the visible bounded nodes under roots into draw order.
// Render state is inherited: a hidden ancestor hides its subtree, a disabled
// depth test or write on an ancestor disables it below, and the render order
// is the highest found on the path. The interactive kind is that of the
// nearest tagged ancestor.
func Collect(roots ...*Node) []Drawable {
	var out []Drawable
	for _, root := range roots {
		if root == nil {
			continue
		}
		var parent math.Mat4
		if root.parent != nil {
			parent = root.parent.WorldMatrix()
		} else {
			parent = math.Identity()
		}
		collect(root, parent, DefaultRenderState(), NotInteractive, &out)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Render.RenderOrder < out[j].Render.RenderOrder
	})
	return out
}

func collect(n *Node, parent math.Mat4, inherited RenderState, kind InteractiveKind, out *[]Drawable) {
	rs := RenderState{
		Visible:     inherited.Visible && n.Render.Visible,
		DepthTest:   inherited.DepthTest && n.Render.DepthTest,
		DepthWrite:  inherited.DepthWrite && n.Render.DepthWrite,
		RenderOrder: max(inherited.RenderOrder, n.Render.RenderOrder),
	}
	if !rs.Visible {
		return
	}
	if n.Interactive.Kind != NotInteractive {
		kind = n.Interactive.Kind
	}
	world := parent.Mul(n.Transform.Matrix())
	if n.HasBounds {
		*out = append(*out, Drawable{
			Name:        n.Name,
			Bounds:      n.LocalBounds.Transform(world),
			Interactive: kind,
			Render:      rs,
		})
	}
	for _, c := range n.children {
		collect(c, world, rs, kind, out)
	}
}
