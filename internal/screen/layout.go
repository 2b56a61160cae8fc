// Package screen maps between pixel positions and minefield coordinates.
package screen

import "image"

// Layout places a Cols x Rows field of square tiles with its top-left
// corner at Origin.
type Layout struct {
	Cols, Rows int
	TileSize   int
	Origin     image.Point
}

// FieldRect is the pixel rectangle covered by the field.
func (l Layout) FieldRect() image.Rectangle {
	return image.Rectangle{
		Min: l.Origin,
		Max: l.Origin.Add(image.Pt(l.Cols*l.TileSize, l.Rows*l.TileSize)),
	}
}

// TileRect is the pixel rectangle of tile (x, y).
func (l Layout) TileRect(x, y int) image.Rectangle {
	tl := l.Origin.Add(image.Pt(x*l.TileSize, y*l.TileSize))
	return image.Rectangle{Min: tl, Max: tl.Add(image.Pt(l.TileSize, l.TileSize))}
}

// GridPos converts a pixel position to tile coordinates. ok is false when
// the position lies outside the field.
func (l Layout) GridPos(px, py int) (x, y int, ok bool) {
	p := image.Pt(px, py)
	if !p.In(l.FieldRect()) {
		return 0, 0, false
	}
	p = p.Sub(l.Origin)
	return p.X / l.TileSize, p.Y / l.TileSize, true
}
