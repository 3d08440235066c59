// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/deskscene/internal/engine/camera"
	"github.com/Faultbox/deskscene/internal/engine/lighting"
	"github.com/Faultbox/deskscene/internal/engine/mesh"
	"github.com/Faultbox/deskscene/internal/engine/shader"
	"github.com/Faultbox/deskscene/internal/logger"
	"github.com/Faultbox/deskscene/internal/scene"
	"github.com/Faultbox/deskscene/internal/sim/steam"
	"github.com/Faultbox/deskscene/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width        int
	Height       int
	ParticleSize float32 // point size in pixels
	Steam        steam.Config
	Scene        scene.Config // shapes of the solids
}

// Colors for the dynamic parts.
var (
	liquidColor   = math.Vec3{X: 0.28, Y: 0.16, Z: 0.08}
	particleColor = [3]float32{0.95, 0.95, 0.95}
)

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	flat   *shader.Program
	liquid *shader.Program
	steam  *shader.Program

	solids    *colorBuffer
	lines     *colorBuffer
	points    *pointBuffer
	surface   *liquidBuffer
	quadVAO   uint32
	quadVBO   uint32
	pixelsBuf []byte
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}
	if r.config.ParticleSize <= 0 {
		r.config.ParticleSize = 3
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background

	var err error
	if r.flat, err = shader.NewProgram("flat", flatVertexSrc, flatFragmentSrc); err != nil {
		return nil, err
	}
	if r.liquid, err = shader.NewProgram("liquid", liquidVertexSrc, liquidFragmentSrc); err != nil {
		r.flat.Delete()
		return nil, err
	}
	if r.steam, err = shader.NewProgram("steam", steamVertexSrc, steamFragmentSrc); err != nil {
		r.flat.Delete()
		r.liquid.Delete()
		return nil, err
	}

	r.solids = newColorBuffer()
	r.lines = newColorBuffer()
	r.points = newPointBuffer()
	r.surface = newLiquidBuffer()
	r.quadVAO, r.quadVBO = newSteamQuad()

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	logger.Debug("renderer created",
		zap.Uint32("flat", r.flat.ID),
		zap.Uint32("liquid", r.liquid.ID),
		zap.Uint32("steam", r.steam.ID),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.solids.delete()
	r.lines.delete()
	r.points.delete()
	r.surface.delete()
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	r.flat.Delete()
	r.liquid.Delete()
	r.steam.Delete()
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
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders one snapshot from the camera's point of view.
// Opaque geometry goes first, then blended particles and steam.
func (r *Renderer) Draw(snap scene.Snapshot, cam *camera.OrbitCamera) {
	vp := cam.ViewProjection()

	// Solids
	r.flat.Use()
	r.flat.SetMat4("uMVP", vp)
	r.flat.SetFloat("uAlpha", 1)
	r.flat.SetFloat("uPointSize", 1)
	r.solids.upload(mesh.Solids(snap, r.config.Scene))
	r.solids.draw(gl.TRIANGLES)

	// Liquid
	if !snap.Cup.Removed {
		lv := snap.Liquid
		r.surface.upload(lv.Positions, lv.Normals, lv.Indices, lv.Dirty)
		r.liquid.Use()
		r.liquid.SetMat4("uModel", lv.Model)
		r.liquid.SetMat4("uViewProj", vp)
		r.liquid.SetVec3("uEye", cam.Eye())
		r.liquid.SetVec3("uLightDir", lighting.DefaultSun)
		r.liquid.SetVec3("uColor", liquidColor)
		r.surface.draw()
	}

	// Guides draw over the solids they annotate
	if len(snap.Guides) > 0 {
		r.flat.Use()
		r.lines.upload(snap.Guides)
		gl.Disable(gl.DEPTH_TEST)
		r.lines.draw(gl.LINES)
		gl.Enable(gl.DEPTH_TEST)
	}

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)

	// Particles
	if snap.Particles.Count > 0 {
		r.flat.Use()
		r.flat.SetFloat("uAlpha", 0.55)
		r.flat.SetFloat("uPointSize", r.config.ParticleSize)
		r.points.upload(snap.Particles.World)
		r.points.draw(particleColor[0], particleColor[1], particleColor[2])
	}

	// Steam columns
	if len(snap.Steam) > 0 {
		sc := r.config.Steam
		r.steam.Use()
		r.steam.SetFloat("uNoiseScale", sc.NoiseScale)
		r.steam.SetFloat("uNoiseStrength", sc.NoiseStrength)
		r.steam.SetFloat("uRiseSpeed", sc.RiseSpeed)
		r.steam.SetFloat("uThreshold", sc.AlphaThreshold)
		gl.BindVertexArray(r.quadVAO)
		for _, col := range snap.Steam {
			r.steam.SetMat4("uMVP", vp.Mul(col.Model))
			r.steam.SetFloat("uTime", col.Time)
			gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
		}
		gl.BindVertexArray(0)
	}

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// End finishes the current frame.
func (r *Renderer) End() {
	// Nothing to do for now - batched draws would be flushed here
}

// ReadPixels reads the current framebuffer as bottom-up RGBA rows.
// The returned slice is reused by the next call.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	size := w * h * 4
	if cap(r.pixelsBuf) < size {
		r.pixelsBuf = make([]byte, size)
	}
	r.pixelsBuf = r.pixelsBuf[:size]
	if size == 0 {
		return r.pixelsBuf, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&r.pixelsBuf[0]))
	return r.pixelsBuf, w, h
}
