package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/arenashooter/common"
)

// Input samples the device state once per frame. Everything downstream reads
// the sampled values so a frame sees one consistent picture.
type Input struct {
	CursorX int
	CursorY int
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Update() {
	i.CursorX, i.CursorY = ebiten.CursorPosition()
}

// MoveDir returns the normalized WASD direction on the x/z plane.
func (i *Input) MoveDir() common.Vec3 {
	var dir common.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		dir.Z++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		dir.Z--
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		dir.X++
	}
	return dir.Normalized()
}

func (i *Input) FireHeld() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (i *Input) ReloadPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

func (i *Input) PauseToggled() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func (i *Input) RestartPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}

// WeaponSlot returns the weapon index selected this frame, if any.
func (i *Input) WeaponSlot() (int, bool) {
	slots := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}
	for idx, key := range slots {
		if inpututil.IsKeyJustPressed(key) {
			return idx, true
		}
	}
	return 0, false
}
