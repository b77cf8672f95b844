package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/arenashooter/common"
	"github.com/milk9111/arenashooter/ecs/component"
)

// The debug view is a top-down orthographic projection: world x maps to
// screen x and world z to screen -y, with the arena centered.

func (g *Game) scale() float64 {
	min, max := g.level.Bounds()
	size := max.X - min.X
	if size <= 0 {
		return 1
	}
	return float64(baseHeight-60) / size
}

func (g *Game) worldToScreen(p common.Vec3) (float32, float32) {
	s := g.scale()
	return float32(baseWidth/2 + p.X*s), float32(baseHeight/2 - p.Z*s)
}

func (g *Game) worldAt(sx, sy int) common.Vec3 {
	s := g.scale()
	return common.Vec3{
		X: (float64(sx) - baseWidth/2) / s,
		Z: (baseHeight/2 - float64(sy)) / s,
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x16, G: 0x16, B: 0x1e, A: 0xff})

	g.drawArena(screen)
	g.drawEnemies(screen)
	g.drawProjectiles(screen)
	g.drawPlayer(screen)
	g.drawHUD(screen)

	if g.gameOver {
		ebitenutil.DebugPrintAt(screen, "YOU DIED - press Enter to restart", baseWidth/2-100, baseHeight/2)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawArena(screen *ebiten.Image) {
	min, max := g.level.Bounds()
	x0, y0 := g.worldToScreen(common.Vec3{X: min.X, Z: max.Z})
	x1, y1 := g.worldToScreen(common.Vec3{X: max.X, Z: min.Z})
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 2, colornames.Slategray, false)

	for _, wall := range g.level.Config().Walls {
		wx0, wy0 := g.worldToScreen(wall.From)
		wx1, wy1 := g.worldToScreen(wall.To)
		vector.StrokeLine(screen, wx0, wy0, wx1, wy1, 3, colornames.Slategray, false)
	}
}

func stateColor(state component.StateID) color.Color {
	switch state {
	case component.StateChase:
		return colornames.Gold
	case component.StateAttack:
		return colornames.Orangered
	case component.StateDead:
		return colornames.Dimgray
	default:
		return colornames.Mediumseagreen
	}
}

func (g *Game) drawEnemies(screen *ebiten.Image) {
	s := float32(g.scale())
	for _, enemy := range g.snapshot.Enemies {
		x, y := g.worldToScreen(enemy.Position)
		vector.DrawFilledCircle(screen, x, y, 0.5*s, stateColor(enemy.State), true)

		if enemy.State != component.StateDead {
			g.drawHealthBar(screen, x, y-0.9*s, enemy.Health)
			if g.debug {
				vector.StrokeCircle(screen, x, y, float32(g.enemySpec.DetectionRange)*s, 1, colornames.Darkslategray, false)
				vector.StrokeCircle(screen, x, y, float32(g.enemySpec.AttackRange)*s, 1, colornames.Darkred, false)
			}
		}
	}
}

func (g *Game) drawHealthBar(screen *ebiten.Image, cx, cy float32, fraction float64) {
	const barW, barH = 24, 3
	x := cx - barW/2
	vector.DrawFilledRect(screen, x, cy, barW, barH, colornames.Darkred, false)
	vector.DrawFilledRect(screen, x, cy, float32(barW*fraction), barH, colornames.Limegreen, false)
}

func (g *Game) drawProjectiles(screen *ebiten.Image) {
	for _, proj := range g.snapshot.Projectiles {
		x, y := g.worldToScreen(proj.Position)
		vector.DrawFilledCircle(screen, x, y, 2, colornames.Khaki, true)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.snapshot.Player
	if p == nil {
		return
	}
	s := float32(g.scale())
	x, y := g.worldToScreen(p.Position)
	vector.DrawFilledCircle(screen, x, y, 0.5*s, colornames.White, true)

	// facing indicator
	rad := p.Facing * math.Pi / 180
	fx := x + float32(math.Sin(rad))*s
	fy := y - float32(math.Cos(rad))*s
	vector.StrokeLine(screen, x, y, fx, fy, 2, colornames.White, true)

	g.drawHealthBar(screen, x, y-0.9*s, p.Health)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	p := g.snapshot.Player
	hud := fmt.Sprintf("score %d  kills %d  hostiles %d", g.snapshot.Score, g.snapshot.Kills, g.snapshot.LiveEnemies)
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)

	if p != nil {
		ammo := fmt.Sprintf("%s  %d/%d", p.Weapon, p.Magazine, p.Reserve)
		if p.Reloading {
			ammo += "  reloading"
		}
		ebitenutil.DebugPrintAt(screen, ammo, 8, 24)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("hp %3.0f%%", p.Health*100), 8, 40)
	}

	for i, line := range g.feed {
		ebitenutil.DebugPrintAt(screen, line, 8, 64+i*14)
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("t=%.2fs  fps %.1f", g.snapshot.Time, ebiten.ActualFPS()), 8, baseHeight-20)
	}
}
