package raycast

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"
)

// DefaultTextureSize is the texel size assumed when no textures are bound.
const DefaultTextureSize = 64

// Framebuffer is the CPU render target. Its pixels are laid out as RGBA
// bytes so they can be uploaded to a window surface unchanged.
type Framebuffer struct {
	img *image.RGBA
}

// NewFramebuffer allocates a width x height framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the number of columns.
func (f *Framebuffer) Width() int { return f.img.Rect.Dx() }

// Height returns the number of rows.
func (f *Framebuffer) Height() int { return f.img.Rect.Dy() }

// Pix returns the RGBA bytes, row-major.
func (f *Framebuffer) Pix() []byte { return f.img.Pix }

// Fill sets every pixel to rgb.
func (f *Framebuffer) Fill(rgb uint32) {
	r, g, b := byte(rgb>>16), byte(rgb>>8), byte(rgb)
	pix := f.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = 255
	}
}

// SetRGB writes an opaque pixel.
func (f *Framebuffer) SetRGB(x, y int, rgb uint32) {
	i := f.img.PixOffset(x, y)
	f.img.Pix[i] = byte(rgb >> 16)
	f.img.Pix[i+1] = byte(rgb >> 8)
	f.img.Pix[i+2] = byte(rgb)
	f.img.Pix[i+3] = 255
}

// RGBAt returns the pixel at (x, y) as 0xRRGGBB.
func (f *Framebuffer) RGBAt(x, y int) uint32 {
	i := f.img.PixOffset(x, y)
	p := f.img.Pix
	return uint32(p[i])<<16 | uint32(p[i+1])<<8 | uint32(p[i+2])
}

// RangeCaster is a ColumnCaster that can cast a sub-range of columns, which
// lets the compositor cast and draw each worker's columns together.
type RangeCaster interface {
	ColumnCaster
	CastRange(cam *Camera, hits []Hit, from, to int)
}

// CastRange implements RangeCaster.
func (d DDACaster) CastRange(cam *Camera, hits []Hit, from, to int) {
	CastRange(d.Grid, cam.Pos, cam.Dir, cam.Plane, hits, from, to)
}

// Compositor renders complete frames: clear, cast every column, project
// and write each wall slice.
type Compositor struct {
	Caster   ColumnCaster
	Textures *TextureSet
	Textured bool
	Workers  int
	Clear    uint32

	hits []Hit
}

// Render draws one frame of cam into fb. It returns only after every column
// has been written.
func (c *Compositor) Render(ctx context.Context, fb *Framebuffer, cam *Camera) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	width := fb.Width()
	if len(c.hits) != width {
		c.hits = make([]Hit, width)
	}
	fb.Fill(c.Clear)

	rc, split := c.Caster.(RangeCaster)
	if !split {
		if err := c.Caster.CastColumns(cam, c.hits); err != nil {
			return err
		}
	}

	workers := c.Workers
	if workers <= 1 {
		if split {
			rc.CastRange(cam, c.hits, 0, width)
		}
		c.drawRange(fb, 0, width)
		return nil
	}

	var g errgroup.Group
	chunk := (width + workers - 1) / workers
	for from := 0; from < width; from += chunk {
		to := min(from+chunk, width)
		g.Go(func() error {
			if split {
				rc.CastRange(cam, c.hits, from, to)
			}
			c.drawRange(fb, from, to)
			return nil
		})
	}
	return g.Wait()
}

// ToggleTextured flips between textured and flat drawing and reports the new
// mode. Textured mode needs a texture set; without one the compositor stays flat.
func (c *Compositor) ToggleTextured() bool {
	c.Textured = !c.Textured && c.Textures != nil
	return c.Textured
}

// LastHits returns the per-column hits of the most recent frame. The slice
// is reused by the next Render.
func (c *Compositor) LastHits() []Hit { return c.hits }

// drawRange writes the wall slices of columns [from, to).
func (c *Compositor) drawRange(fb *Framebuffer, from, to int) {
	height := fb.Height()
	texSize := DefaultTextureSize
	if c.Textures != nil {
		texSize = c.Textures.Size()
	}
	for x := from; x < to; x++ {
		hit := c.hits[x]
		s := Project(hit, height, texSize, texSize)
		if c.Textured && c.Textures != nil && hit.Material >= 0 && hit.Material < c.Textures.Len() {
			tex := c.Textures.Get(hit.Material)
			pos := s.TexPos
			for y := s.DrawStart; y < s.DrawEnd; y++ {
				ty := TexY(pos, texSize)
				pos += s.TexStep
				fb.SetRGB(x, y, Shade(tex.At(s.TexX, ty), hit.Side))
			}
			continue
		}
		rgb := Shade(FlatColor(hit.Material), hit.Side)
		for y := s.DrawStart; y < s.DrawEnd; y++ {
			fb.SetRGB(x, y, rgb)
		}
	}
}
