// Package render draws shooter snapshots into a core.Screen.
package render

import (
	"github.com/vovakirdan/gridshooter/internal/core"
	"github.com/vovakirdan/gridshooter/internal/shooter"
)

// Style maps entity kinds to glyphs and colors.
type Style struct {
	Player      rune
	Bullet      rune
	Enemy       rune
	PlayerColor core.Color
	BulletColor core.Color
	EnemyColor  core.Color
	BorderColor core.Color
}

// DefaultStyle returns the stock glyph set.
func DefaultStyle() Style {
	return Style{
		Player:      '✈',
		Bullet:      '|',
		Enemy:       '●',
		PlayerColor: core.ColorBrightCyan,
		BulletColor: core.ColorBrightYellow,
		EnemyColor:  core.ColorBrightRed,
		BorderColor: core.ColorGray,
	}
}

// Cell returns the screen cell used for an entity of kind k.
func (s Style) Cell(k shooter.Kind) core.Cell {
	switch k {
	case shooter.KindPlayer:
		return core.Cell{Rune: s.Player, Color: s.PlayerColor}
	case shooter.KindBullet:
		return core.Cell{Rune: s.Bullet, Color: s.BulletColor}
	case shooter.KindEnemy:
		return core.Cell{Rune: s.Enemy, Color: s.EnemyColor}
	default:
		return core.Cell{Rune: '?', Color: core.ColorDefault}
	}
}

// Draw blanks the snapshot's arena on dst and redraws every entity at its
// absolute position (top+y, left+x). Entities outside the arena and cells
// outside dst are skipped. Later entities overwrite earlier ones, so enemies
// win over bullets on a shared cell.
func Draw(dst *core.Screen, snap shooter.Snapshot, style Style) {
	a := snap.Arena
	if a.Empty() {
		return
	}
	dst.ClearRect(a.Rect())

	for _, e := range snap.Entities() {
		if !a.Contains(e.Pos) {
			continue
		}
		p := a.Abs(e.Pos)
		dst.SetCell(p.X, p.Y, style.Cell(e.Kind))
	}
}

// Clear blanks the arena on dst. An empty arena is a no-op.
func Clear(dst *core.Screen, a shooter.Arena) {
	if a.Empty() {
		return
	}
	dst.ClearRect(a.Rect())
}

// Frame renders snap onto a fresh screen just large enough to hold the arena
// at its absolute offset, with a border one cell outside it when there is
// room.
func Frame(snap shooter.Snapshot, style Style) *core.Screen {
	a := snap.Arena
	scr := core.NewScreen(a.Left+a.Cols+1, a.Top+a.Rows+1)
	if a.Empty() {
		return scr
	}
	scr.DrawBox(core.NewRect(a.Left-1, a.Top-1, a.Cols+2, a.Rows+2), style.BorderColor)
	Draw(scr, snap, style)
	return scr
}
