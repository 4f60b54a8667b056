// polydemo drives the coverage/binning core end to end, the ebiten window
// loop playing the part of polygon_core.go's Game: load an OBJ model and
// its texture, build a camera, and every frame transform, clip, cull, bin
// and draw every triangle before presenting the frame.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/ghetty3d/polycore/internal/config"
	"github.com/ghetty3d/polycore/internal/drawers"
	"github.com/ghetty3d/polycore/internal/framebuffer"
	"github.com/ghetty3d/polycore/internal/logging"
	"github.com/ghetty3d/polycore/internal/model"
	"github.com/ghetty3d/polycore/internal/raster"
	"github.com/ghetty3d/polycore/internal/sched"
	"github.com/ghetty3d/polycore/internal/stencil"
	"github.com/ghetty3d/polycore/internal/subsector"
	"github.com/ghetty3d/polycore/internal/texture"
	"github.com/ghetty3d/polycore/internal/upstream"
)

// farSubsectorDepth is the subsector buffer's initial value: larger than any
// real triangle depth, so the very first triangle to touch a pixel always
// passes the Subsector Tile Binner's >= test.
const farSubsectorDepth = 0xFFFFFFFF

// game implements ebiten.Game, replacing polygon_core.go's package-level
// Game{} and its package-level camera/rotation vars with one struct so
// nothing here is process-global.
type game struct {
	cfg config.Config

	mesh    model.Mesh
	tex     *drawers.Texture
	sched   *sched.Scheduler
	stencil *stencil.Buffer
	subsec  *subsector.Buffer
	frame   *framebuffer.Buffer
	screen  *ebiten.Image
	logger  *logging.Logger

	cameraPosition mgl32.Vec3
	cameraRotation mgl32.Vec3

	modelRotation mgl32.Vec3
}

// Update applies polygon_core.go's own WASD-strafe, arrow-key-look control
// scheme (Game.Update) to cameraPosition/cameraRotation.
func (g *game) Update() error {
	const speed float32 = 2

	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.cameraRotation[1] += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.cameraRotation[1] -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.cameraRotation[0] -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.cameraRotation[0] += speed
	}

	yaw := mgl32.DegToRad(g.cameraRotation[1])
	pitch := mgl32.DegToRad(g.cameraRotation[0])
	forward := mgl32.Vec3{math32.Cos(yaw+mgl32.DegToRad(90)) * math32.Cos(pitch), math32.Sin(pitch), math32.Sin(yaw+mgl32.DegToRad(90)) * math32.Cos(pitch)}
	strafe := mgl32.Vec3{math32.Cos(yaw), 0, math32.Sin(yaw)}

	if ebiten.IsKeyPressed(ebiten.KeyW) {
		g.cameraPosition = g.cameraPosition.Add(forward)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		g.cameraPosition = g.cameraPosition.Sub(forward)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		g.cameraPosition = g.cameraPosition.Sub(strafe)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		g.cameraPosition = g.cameraPosition.Add(strafe)
	}

	return nil
}

// Draw transforms, clips, culls and bins every mesh triangle against the
// current camera, in polygon_core.go's own Draw order: rebuild the
// model/view/projection matrix, re-clip the whole mesh, fan out the
// coverage core across the worker pool per triangle, then present.
func (g *game) Draw(screen *ebiten.Image) {
	width, height := g.cfg.Screen.Width, g.cfg.Screen.Height

	g.frame.Clear(16, 16, 16, 255)
	g.stencil.Reset(0)
	g.subsec.Reset(farSubsectorDepth)

	camera := upstream.Camera{Position: g.cameraPosition, Target: g.cameraPosition.Add(mgl32.Vec3{
		math32.Cos(mgl32.DegToRad(g.cameraRotation[1] + 90)),
		math32.Sin(mgl32.DegToRad(g.cameraRotation[0])),
		math32.Sin(mgl32.DegToRad(g.cameraRotation[1] + 90)),
	})}
	view := camera.ViewMatrix()
	projection := upstream.ProjectionMatrix(g.cfg.Camera.FOV, float32(width)/float32(height), g.cfg.Camera.Near, g.cfg.Camera.Far)
	modelMatrix := upstream.ModelMatrix(mgl32.Vec3{}, g.modelRotation)
	mvp := upstream.MVP(modelMatrix, view, projection)

	triangles := upstream.ProjectMesh(g.mesh, mvp, width, height)

	shade := &drawers.DrawArgs{
		Texture:    g.tex,
		SolidColor: drawers.Color{R: 220, G: 220, B: 220, A: 255},
		Light:      255,
	}

	for _, tri := range triangles {
		args := &raster.TriangleArgs{
			V1: tri.V1, V2: tri.V2, V3: tri.V3,
			ClipRight:  width,
			ClipBottom: height,
			Stencil:    g.stencil,
			Subsector:  g.subsec,
			Dest:       g.frame,
			Pitch:      width,
			Uniforms:   raster.Uniforms{SubsectorDepth: depthOf(tri)},
		}

		shade.U = (tri.UV1[0] + tri.UV2[0] + tri.UV3[0]) / 3
		shade.V = (tri.UV1[1] + tri.UV2[1] + tri.UV3[1]) / 3

		drawFn := drawers.Fill32[drawers.Copy]
		if g.tex != nil {
			drawFn = drawers.Draw32[drawers.Copy]
		}

		g.sched.Draw(args, sched.SubsectorVariant, drawFn, shade)
	}

	g.screen.WritePixels(g.frame.Pixels)
	screen.DrawImage(g.screen, nil)

	if g.logger != nil {
		g.logger.LogFrameRate(ebiten.ActualFPS())
	}

	ebitenutil.DebugPrint(screen, "polydemo")
}

// depthOf quantizes a triangle's average clip-space w into the uint32
// ownership key the Subsector Tile Binner compares with >=, closer
// triangles (smaller w) winning over farther ones.
func depthOf(tri upstream.ScreenTriangle) uint32 {
	avg := (tri.W1 + tri.W2 + tri.W3) / 3
	if avg < 0 {
		avg = 0
	}
	return uint32(avg * 1000)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Screen.Width, g.cfg.Screen.Height
}

func main() {
	configPath := flag.String("config", "polydemo.toml", "path to a TOML config file")
	modelPath := flag.String("model", "", "path to a Wavefront OBJ model (overrides config)")
	texturePath := flag.String("texture", "", "path to a texture image (overrides config)")
	logDir := flag.String("logdir", "", "directory to write frame-rate logs into (disabled if empty)")
	flag.Parse()

	cfg := config.Default()
	if _, err := os.Stat(*configPath); err == nil {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}
	if *texturePath != "" {
		cfg.Model.Texture = *texturePath
	}

	mesh, err := model.Load(cfg.Model.Path)
	if err != nil {
		log.Fatal(err)
	}

	var tex *drawers.Texture
	if cfg.Model.Texture != "" {
		tex, err = texture.Load(cfg.Model.Texture)
		if err != nil {
			log.Fatal(err)
		}
	}

	width, height := cfg.Screen.Width, cfg.Screen.Height

	// A triangle spanning the whole screen needs every tile in the grid;
	// the scheduler's scratch buffers must be sized for that worst case.
	maxTiles := ((width + raster.TileSize - 1) / raster.TileSize) * ((height + raster.TileSize - 1) / raster.TileSize)
	if cfg.Workers.MaxTilesPerTriangle > maxTiles {
		maxTiles = cfg.Workers.MaxTilesPerTriangle
	}

	g := &game{
		cfg:     cfg,
		mesh:    mesh,
		tex:     tex,
		sched:   sched.New(cfg.Workers.Count, maxTiles),
		stencil: stencil.New(width, height, 0),
		subsec:  subsector.New(width, height, farSubsectorDepth),
		frame:   framebuffer.New(framebuffer.RGBA32, width, height),
		screen:  ebiten.NewImage(width, height),

		cameraPosition: mgl32.Vec3{0, 0, -5},
	}

	if *logDir != "" {
		logger, err := logging.New(*logDir, "polydemo", g.sched.NumWorkers)
		if err != nil {
			log.Fatal(err)
		}
		defer logger.Close()
		g.logger = logger
	}

	ebiten.SetWindowSize(width*2, height*2)
	ebiten.SetWindowTitle("polydemo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
