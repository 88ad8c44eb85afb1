package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/wikiwalk/internal/engine/shader"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

const pictureVertexSrc = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
uniform mat4 uMVP;
out vec2 vUV;
void main() {
	gl_Position = uMVP * vec4(aPos, 0.0, 1.0);
	vUV = aUV;
}
`

const pictureFragmentSrc = `
#version 410 core
uniform sampler2D uTexture;
in vec2 vUV;
out vec4 FragColor;
void main() {
	FragColor = texture(uTexture, vUV);
}
`

// pictureLift keeps pictures in front of the wall surface they hang on.
const pictureLift = 0.005

// Picture is a textured rectangle hanging on a wall.
type Picture struct {
	Texture uint32
	Center  math.Vec3
	Right   math.Vec3 // unit, along the picture's width
	Normal  math.Vec3 // unit, out of the wall
	Width   float32
	Height  float32
}

// Model returns the matrix that maps the unit quad onto the picture.
func (p Picture) Model() math.Mat4 {
	c := p.Center.Add(p.Normal.Scale(pictureLift))
	r := p.Right.Scale(p.Width)
	u := math.UnitY.Scale(p.Height)
	return math.Mat4{
		r.X, r.Y, r.Z, 0,
		u.X, u.Y, u.Z, 0,
		p.Normal.X, p.Normal.Y, p.Normal.Z, 0,
		c.X, c.Y, c.Z, 1,
	}
}

type pictureProgram struct {
	program  uint32
	uMVP     int32
	uTexture int32
	vao, vbo uint32
}

func newPictureProgram() (*pictureProgram, error) {
	p := &pictureProgram{}
	var err error
	if p.program, err = shader.CompileProgram(pictureVertexSrc, pictureFragmentSrc); err != nil {
		return nil, fmt.Errorf("picture shader: %w", err)
	}
	if p.uMVP, err = shader.Uniform(p.program, "uMVP"); err != nil {
		p.close()
		return nil, err
	}
	if p.uTexture, err = shader.Uniform(p.program, "uTexture"); err != nil {
		p.close()
		return nil, err
	}

	// Two triangles, pos(2) + uv(2).
	quad := []float32{
		-0.5, -0.5, 0, 0,
		0.5, -0.5, 1, 0,
		0.5, 0.5, 1, 1,
		-0.5, -0.5, 0, 0,
		0.5, 0.5, 1, 1,
		-0.5, 0.5, 0, 1,
	}
	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, unsafe.Pointer(&quad[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return p, nil
}

func (p *pictureProgram) close() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.program != 0 {
		gl.DeleteProgram(p.program)
	}
	*p = pictureProgram{}
}

// DrawPictures draws textured wall pictures with depth testing on.
func (r *Renderer) DrawPictures(pics []Picture, view, projection math.Mat4) {
	if len(pics) == 0 {
		return
	}
	viewProj := projection.Mul(view)

	gl.Enable(gl.DEPTH_TEST)
	gl.UseProgram(r.pictures.program)
	gl.Uniform1i(r.pictures.uTexture, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(r.pictures.vao)
	for _, p := range pics {
		mvp := viewProj.Mul(p.Model())
		gl.UniformMatrix4fv(r.pictures.uMVP, 1, false, mvp.Ptr())
		gl.BindTexture(gl.TEXTURE_2D, p.Texture)
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(r.program)
}
