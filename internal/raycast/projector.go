package raycast

import "math"

// minDistance keeps the projected height finite when the camera touches a face.
const minDistance = 1e-6

// Slice is the screen-space vertical strip a hit projects to.
type Slice struct {
	LineHeight int
	DrawStart  int // first drawn row
	DrawEnd    int // rows are drawn in [DrawStart, DrawEnd)
	TexX       int
	TexStep    float64 // texture rows advanced per screen row
	TexPos     float64 // texture row at DrawStart
}

// Project converts a hit into a slice for a viewport viewHeight rows tall
// and textures of texWidth x texHeight texels.
func Project(hit Hit, viewHeight, texWidth, texHeight int) Slice {
	dist := hit.Distance
	if dist < minDistance {
		dist = minDistance
	}
	fh := math.Floor(float64(viewHeight) / dist)
	lineHeight := viewHeight * 64
	if fh < float64(lineHeight) {
		lineHeight = int(fh)
	}
	if lineHeight < 1 {
		lineHeight = 1
	}

	half := viewHeight / 2
	drawStart := half - lineHeight/2
	if drawStart < 0 {
		drawStart = 0
	}
	drawEnd := half + lineHeight/2
	if drawEnd > viewHeight-1 {
		drawEnd = viewHeight - 1
	}

	texX := int(hit.WallX * float64(texWidth))
	if texX >= texWidth {
		texX = texWidth - 1
	}
	if mirrored(hit) {
		texX = texWidth - texX - 1
	}

	step := float64(texHeight) / float64(lineHeight)
	return Slice{
		LineHeight: lineHeight,
		DrawStart:  drawStart,
		DrawEnd:    drawEnd,
		TexX:       texX,
		TexStep:    step,
		TexPos:     float64(drawStart-half+lineHeight/2) * step,
	}
}

// mirrored reports whether the face is seen from the side that would flip
// the texture horizontally.
func mirrored(hit Hit) bool {
	return (hit.Side == SideX && hit.RayDir.X > 0) || (hit.Side == SideY && hit.RayDir.Y < 0)
}

// TexY maps a texture position to a texture row, wrapping every texHeight
// rows. Power-of-two heights use a mask.
func TexY(texPos float64, texHeight int) int {
	y := int(math.Floor(texPos))
	if texHeight&(texHeight-1) == 0 {
		return y & (texHeight - 1)
	}
	y %= texHeight
	if y < 0 {
		y += texHeight
	}
	return y
}

// TexYs returns the texture row sampled by every drawn row of the slice.
func (s Slice) TexYs(texHeight int) []int {
	if s.DrawEnd <= s.DrawStart {
		return nil
	}
	out := make([]int, 0, s.DrawEnd-s.DrawStart)
	pos := s.TexPos
	for y := s.DrawStart; y < s.DrawEnd; y++ {
		out = append(out, TexY(pos, texHeight))
		pos += s.TexStep
	}
	return out
}

// Shade darkens X-side faces to half brightness; Y-side faces keep the
// texel color.
func Shade(rgb uint32, side Side) uint32 {
	if side == SideX {
		return (rgb >> 1) & 0x7F7F7F
	}
	return rgb
}

// flatPalette holds one untextured color per material, in material order.
var flatPalette = []uint32{
	0xFF0000, // red
	0x00FF00, // green
	0x0000FF, // blue
	0xFFFFFF, // white
	0xFFFF00, // yellow
	0x00FFFF, // cyan
	0xFF00FF, // magenta
	0xFF8000, // orange
	0x808080, // grey
}

// FlatColor returns the solid color drawn for a material when textures are
// disabled.
func FlatColor(material int) uint32 {
	if material < 0 {
		return flatPalette[len(flatPalette)-1]
	}
	return flatPalette[material%len(flatPalette)]
}
