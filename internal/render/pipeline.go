package render

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"math/rand"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/blackhole/internal/astro"
	"github.com/san-kum/blackhole/internal/config"
	"github.com/san-kum/blackhole/internal/scene"
)

var (
	// SceneClear is the background of the scene pass.
	SceneClear = rl.NewColor(0x13, 0x0e, 0x16, 255)
	// DistortionClear means "no lensing".
	DistortionClear = rl.Black
)

type Options struct {
	Width  int32
	Height int32
	Seed   int64
	Logger *slog.Logger
}

type program struct {
	shader rl.Shader
	locs   map[string]int32
}

func loadProgram(name string) (*program, error) {
	vs, fs, err := ShaderSource(name)
	if err != nil {
		return nil, err
	}
	shader := rl.LoadShaderFromMemory(vs, fs)
	if !rl.IsShaderValid(shader) {
		return nil, fmt.Errorf("%w: %s", ErrShaderLoad, name)
	}
	p := &program{shader: shader, locs: make(map[string]int32)}
	for _, u := range programUniforms[name] {
		p.locs[u] = rl.GetShaderLocation(shader, u)
	}
	return p, nil
}

func (p *program) set(name string, v []float32) {
	loc, ok := p.locs[name]
	if !ok || loc < 0 {
		return
	}
	typ := rl.ShaderUniformFloat
	switch len(v) {
	case 2:
		typ = rl.ShaderUniformVec2
	case 3:
		typ = rl.ShaderUniformVec3
	}
	rl.SetShaderValue(p.shader, loc, v, typ)
}

// Pipeline renders one frame in three passes: the lit scene into an
// offscreen target, the lensing strength into a second target, and a
// full-screen composite of both onto the framebuffer.
//
// A Pipeline owns GPU resources and must only be used from the thread that
// created the window.
type Pipeline struct {
	log  *slog.Logger
	seed int64

	width, height int32

	cfg     config.Config
	derived astro.Derived
	applied bool

	programs map[string]*program

	sceneTarget      rl.RenderTexture2D
	distortionTarget rl.RenderTexture2D

	stars          *gpuMesh
	disc           *gpuMesh
	hole           *gpuMesh
	distortionDisc *gpuMesh

	gradient rl.Texture2D
	noise    rl.Texture2D

	starMat       rl.Material
	discMat       rl.Material
	holeMat       rl.Material
	distortionMat rl.Material
}

// New compiles every program and allocates the render targets. The window
// must already be open.
func New(opts Options) (*Pipeline, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrBadViewport
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	p := &Pipeline{
		log:      log.With("component", "render"),
		seed:     opts.Seed,
		programs: make(map[string]*program, len(programNames)),
	}
	for _, name := range programNames {
		prog, err := loadProgram(name)
		if err != nil {
			p.Unload()
			return nil, err
		}
		p.programs[name] = prog
	}

	p.starMat = p.material(ProgramStars)
	p.discMat = p.material(ProgramDisc)
	p.holeMat = p.material(ProgramHole)
	p.distortionMat = p.material(ProgramDistortionDisc)

	p.noise = loadTexture(scene.NoiseTexture(scene.NoiseSize, opts.Seed), rl.WrapRepeat)
	rl.SetMaterialTexture(&p.discMat, rl.MapMetalness, p.noise)

	p.allocTargets(opts.Width, opts.Height)
	p.log.Info("pipeline ready", "width", opts.Width, "height", opts.Height)
	return p, nil
}

func (p *Pipeline) material(name string) rl.Material {
	mat := rl.LoadMaterialDefault()
	mat.Shader = p.programs[name].shader
	return mat
}

// releaseMaterial frees a material's map array. UnloadMaterial would also
// unload the shader and map textures, which the pipeline owns and frees
// separately, so those are detached first.
func releaseMaterial(mat *rl.Material) {
	if mat.Maps == nil {
		return
	}
	detachMaterial(mat)
	rl.UnloadMaterial(*mat)
	*mat = rl.Material{}
}

func detachMaterial(mat *rl.Material) {
	mat.Shader = rl.Shader{}
	if mat.Maps == nil {
		return
	}
	maps := unsafe.Slice(mat.Maps, rl.MaxMaterialMaps)
	for i := range maps {
		maps[i].Texture = rl.Texture2D{}
	}
}

func loadTexture(img image.Image, wrap rl.TextureWrapMode) rl.Texture2D {
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	rl.SetTextureWrap(tex, wrap)
	return tex
}

func (p *Pipeline) allocTargets(w, h int32) {
	p.width, p.height = w, h
	p.sceneTarget = rl.LoadRenderTexture(w, h)
	p.distortionTarget = rl.LoadRenderTexture(w, h)
	rl.SetTextureFilter(p.sceneTarget.Texture, rl.FilterBilinear)
	rl.SetTextureFilter(p.distortionTarget.Texture, rl.FilterBilinear)
	rl.SetTextureWrap(p.sceneTarget.Texture, rl.WrapClamp)
	rl.SetTextureWrap(p.distortionTarget.Texture, rl.WrapClamp)
}

func (p *Pipeline) freeTargets() {
	if p.sceneTarget.ID != 0 {
		rl.UnloadRenderTexture(p.sceneTarget)
		p.sceneTarget = rl.RenderTexture2D{}
	}
	if p.distortionTarget.ID != 0 {
		rl.UnloadRenderTexture(p.distortionTarget)
		p.distortionTarget = rl.RenderTexture2D{}
	}
}

// Apply switches the pipeline to a new configuration. Only resources whose
// inputs changed are rebuilt: the star mesh on a new star count, the
// gradient on a new temperature, mass or accretion rate, and the disc and
// distortion meshes on a new mass.
func (p *Pipeline) Apply(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	prev, had := p.cfg, p.applied
	d := astro.Derive(cfg)

	if !had || prev.StarCount != cfg.StarCount {
		p.stars.unload()
		field := scene.NewStarField(cfg.StarCount, rand.New(rand.NewSource(p.seed)))
		p.stars = uploadStars(field)
		p.log.Debug("rebuilt star field", "stars", cfg.StarCount)
	}

	if !had || !astro.SameGradient(prev, cfg) {
		if p.gradient.ID != 0 {
			rl.UnloadTexture(p.gradient)
		}
		p.gradient = loadTexture(astro.DiskGradient(d.BaseTemperature, astro.GradientHeight), rl.WrapClamp)
		rl.SetMaterialTexture(&p.discMat, rl.MapAlbedo, p.gradient)
		p.log.Debug("rebuilt disc gradient", "base_temperature", d.BaseTemperature)
	}

	if !had || !astro.SameGeometry(prev, cfg) {
		p.disc.unload()
		p.hole.unload()
		p.distortionDisc.unload()
		p.disc = uploadIndexed(scene.NewDisc(d.InnerRadius, d.OuterRadius, scene.DiscRadialSegments, scene.DiscRings))
		p.hole = uploadIndexed(scene.NewQuad(d.HoleSize))
		p.distortionDisc = uploadIndexed(scene.NewQuad(d.DistortionDiscSize))
		p.log.Debug("rebuilt disc geometry", "rs", d.SchwarzschildRadius, "inner", d.InnerRadius, "outer", d.OuterRadius)
	}

	p.cfg, p.derived, p.applied = cfg, d, true
	p.log.Info("configuration applied", "name", cfg.Name)
	return nil
}

func (p *Pipeline) Config() config.Config { return p.cfg }
func (p *Pipeline) Derived() astro.Derived { return p.derived }
func (p *Pipeline) Size() (w, h int32) { return p.width, p.height }

// Resize reallocates both render targets.
func (p *Pipeline) Resize(w, h int32) error {
	if w <= 0 || h <= 0 {
		return ErrBadViewport
	}
	if w == p.width && h == p.height {
		return nil
	}
	p.freeTargets()
	p.allocTargets(w, h)
	p.log.Debug("resized targets", "width", w, "height", h)
	return nil
}

func (p *Pipeline) bind(u FrameUniforms) {
	for name, prog := range p.programs {
		for k, v := range u.values(name) {
			prog.set(k, v)
		}
	}
}

func (p *Pipeline) begin3D(view scene.View) {
	rl.BeginMode3D(rl.Camera3D{
		Position:   rl.NewVector3(view.Eye[0], view.Eye[1], view.Eye[2]),
		Target:     rl.NewVector3(view.Target[0], view.Target[1], view.Target[2]),
		Up:         rl.NewVector3(view.Up[0], view.Up[1], view.Up[2]),
		Fovy:       scene.FovY,
		Projection: rl.CameraPerspective,
	})
	// raylib's built-in clip planes differ from the camera's.
	rl.SetMatrixProjection(toMatrix(view.Projection()))
}

// Frame renders the three passes for the given elapsed time and camera and
// returns the uniforms it used. The composite is drawn to the current
// framebuffer, so callers wrap it in BeginDrawing/EndDrawing.
func (p *Pipeline) Frame(elapsed float64, view scene.View) (FrameUniforms, error) {
	if !p.applied {
		return FrameUniforms{}, ErrNotApplied
	}
	u := Uniforms(p.cfg, p.derived, elapsed, view.Convergence())
	p.bind(u)

	p.scenePass(view)
	p.distortionPass(view)
	p.composite()
	return u, nil
}

func (p *Pipeline) scenePass(view scene.View) {
	rl.BeginTextureMode(p.sceneTarget)
	rl.ClearBackground(SceneClear)
	p.begin3D(view)

	rl.DisableDepthMask()
	p.stars.draw(p.starMat, rl.MatrixIdentity())
	rl.EnableDepthMask()

	rl.DisableBackfaceCulling()
	p.disc.draw(p.discMat, rl.MatrixIdentity())
	rl.EnableBackfaceCulling()

	rl.EndMode3D()
	rl.EndTextureMode()
}

func (p *Pipeline) distortionPass(view scene.View) {
	rl.BeginTextureMode(p.distortionTarget)
	rl.ClearBackground(DistortionClear)
	p.begin3D(view)

	rl.DisableDepthTest()
	rl.DisableBackfaceCulling()
	rl.BeginBlendMode(rl.BlendAdditive)

	billboard := scene.Billboard(mgl32.Vec3{}, view.Eye, view.Up)
	p.hole.draw(p.holeMat, toMatrix(billboard))
	p.distortionDisc.draw(p.distortionMat, toMatrix(mgl32.HomogRotate3DX(-math.Pi/2)))

	rl.EndBlendMode()
	rl.EnableBackfaceCulling()
	rl.EnableDepthTest()

	rl.EndMode3D()
	rl.EndTextureMode()
}

func (p *Pipeline) composite() {
	prog := p.programs[ProgramComposite]
	rl.BeginShaderMode(prog.shader)
	rl.SetShaderValueTexture(prog.shader, prog.locs["distortionTexture"], p.distortionTarget.Texture)

	// Render targets are stored bottom-up.
	src := rl.NewRectangle(0, 0, float32(p.sceneTarget.Texture.Width), -float32(p.sceneTarget.Texture.Height))
	rl.DrawTextureRec(p.sceneTarget.Texture, src, rl.NewVector2(0, 0), rl.White)
	rl.EndShaderMode()
}

// Capture reads back the composited framebuffer. Call it after Frame and
// before any overlay is drawn.
func (p *Pipeline) Capture() (image.Image, error) {
	img := rl.LoadImageFromScreen()
	if img == nil || img.Width == 0 || img.Height == 0 {
		return nil, ErrEmptyFrame
	}
	defer rl.UnloadImage(img)
	return img.ToImage(), nil
}

// Unload releases every GPU resource. The pipeline is unusable afterwards.
func (p *Pipeline) Unload() {
	p.stars.unload()
	p.disc.unload()
	p.hole.unload()
	p.distortionDisc.unload()
	if p.gradient.ID != 0 {
		rl.UnloadTexture(p.gradient)
		p.gradient = rl.Texture2D{}
	}
	if p.noise.ID != 0 {
		rl.UnloadTexture(p.noise)
		p.noise = rl.Texture2D{}
	}
	p.freeTargets()
	for _, mat := range []*rl.Material{&p.starMat, &p.discMat, &p.holeMat, &p.distortionMat} {
		releaseMaterial(mat)
	}
	for name, prog := range p.programs {
		rl.UnloadShader(prog.shader)
		delete(p.programs, name)
	}
	p.applied = false
	p.log.Info("pipeline unloaded")
}
