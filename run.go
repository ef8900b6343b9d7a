package touchtree

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowChain prints the hovered hit chain in the top-left corner.
	ShowChain bool
	// Debug enables Scene debug mode.
	Debug bool
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene *Scene
	w, h  int
}

func (g *gameShell) Update() error {
	g.scene.Update()
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *gameShell) Layout(_, _ int) (int, int) {
	return g.w, g.h
}

// Run opens a window and drives the scene until the window is closed.
// For full control, implement ebiten.Game yourself and call Scene.Update
// and Scene.Draw directly.
func Run(scene *Scene, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 480
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	scene.ShowChain = scene.ShowChain || cfg.ShowChain
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	return ebiten.RunGame(&gameShell{scene: scene, w: w, h: h})
}
