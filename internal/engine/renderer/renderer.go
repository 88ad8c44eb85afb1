// Package renderer draws the room as outlined boxes, the pictures hung on
// its walls and the crosshair.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/engine/scene"
	"github.com/Faultbox/wikiwalk/internal/engine/shader"
	"github.com/Faultbox/wikiwalk/internal/logger"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Palette colours per interactive kind.
var (
	colorSurface  = [4]float32{0.55, 0.55, 0.6, 1}
	colorDoor     = [4]float32{0.95, 0.75, 0.3, 1}
	colorPickable = [4]float32{0.4, 0.85, 0.6, 1}
	colorAction   = [4]float32{0.5, 0.7, 1.0, 1}
	colorAimIdle  = [4]float32{1, 1, 1, 0.6}
	colorAimHot   = [4]float32{1, 0.85, 0.2, 1}
)

const vertexSrc = `
#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 uMVP;
void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const fragmentSrc = `
#version 410 core
uniform vec4 uColor;
out vec4 FragColor;
void main() {
	FragColor = uColor;
}
`

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program  uint32
	uMVP     int32
	uColor   int32
	cubeVAO  uint32
	cubeVBO  uint32
	crossVAO uint32
	crossVBO uint32

	pictures *pictureProgram
}

// New creates a new renderer. The OpenGL context must already exist.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.08, 0.08, 0.1, 1.0)

	var err error
	r.program, err = shader.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	if r.uMVP, err = shader.Uniform(r.program, "uMVP"); err != nil {
		r.Close()
		return nil, err
	}
	if r.uColor, err = shader.Uniform(r.program, "uColor"); err != nil {
		r.Close()
		return nil, err
	}

	r.cubeVAO, r.cubeVBO = upload(cubeEdges())
	r.crossVAO, r.crossVBO = upload([]float32{
		-1, 0, 0, 1, 0, 0,
		0, -1, 0, 0, 1, 0,
	})

	if r.pictures, err = newPictureProgram(); err != nil {
		r.Close()
		return nil, err
	}

	logger.Debug("renderer ready",
		zap.Uint32("program", r.program),
		zap.Uint32("cubeVAO", r.cubeVAO),
		zap.Uint32("crossVAO", r.crossVAO),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, vao := range []*uint32{&r.cubeVAO, &r.crossVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
			*vao = 0
		}
	}
	for _, vbo := range []*uint32{&r.cubeVBO, &r.crossVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
			*vbo = 0
		}
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
	if r.pictures != nil {
		r.pictures.close()
		r.pictures = nil
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawScene outlines every drawable, honouring its depth flags. Items must
// already be in render order.
func (r *Renderer) DrawScene(items []scene.Drawable, view, projection math.Mat4) {
	viewProj := projection.Mul(view)
	gl.BindVertexArray(r.cubeVAO)
	for _, it := range items {
		setFlag(gl.DEPTH_TEST, it.Render.DepthTest)
		gl.DepthMask(it.Render.DepthWrite)

		model := math.Translate(it.Bounds.Center()).Mul(math.ScaleMat(it.Bounds.Size()))
		mvp := viewProj.Mul(model)
		gl.UniformMatrix4fv(r.uMVP, 1, false, mvp.Ptr())
		c := colorFor(it.Interactive)
		gl.Uniform4f(r.uColor, c[0], c[1], c[2], c[3])
		gl.DrawArrays(gl.LINES, 0, 24)
	}
	gl.DepthMask(true)
}

// DrawCrosshair draws the aim point, highlighted when hot.
func (r *Renderer) DrawCrosshair(hot bool) {
	gl.Disable(gl.DEPTH_TEST)
	aspect := float32(1)
	if r.config.Height > 0 {
		aspect = float32(r.config.Width) / float32(r.config.Height)
	}
	size := float32(0.02)
	c := colorAimIdle
	if hot {
		size = 0.03
		c = colorAimHot
	}
	m := math.ScaleMat(math.V3(size/aspect, size, 1))
	gl.UniformMatrix4fv(r.uMVP, 1, false, m.Ptr())
	gl.Uniform4f(r.uColor, c[0], c[1], c[2], c[3])
	gl.BindVertexArray(r.crossVAO)
	gl.DrawArrays(gl.LINES, 0, 4)
}

func colorFor(kind scene.InteractiveKind) [4]float32 {
	switch kind {
	case scene.InteractiveDoor:
		return colorDoor
	case scene.InteractivePickable:
		return colorPickable
	case scene.InteractiveAction:
		return colorAction
	default:
		return colorSurface
	}
}

func setFlag(flag uint32, on bool) {
	if on {
		gl.Enable(flag)
	} else {
		gl.Disable(flag)
	}
}

// upload creates a VAO holding tightly packed vec3 positions.
func upload(vertices []float32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// cubeEdges returns the 12 edges of a unit cube centred on the origin as
// 24 line vertices.
func cubeEdges() []float32 {
	corner := func(i int) [3]float32 {
		v := [3]float32{-0.5, -0.5, -0.5}
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				v[axis] = 0.5
			}
		}
		return v
	}
	var out []float32
	for i := 0; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			j := i | 1<<axis
			if j == i {
				continue
			}
			a, b := corner(i), corner(j)
			out = append(out, a[0], a[1], a[2], b[0], b[1], b[2])
		}
	}
	return out
}
