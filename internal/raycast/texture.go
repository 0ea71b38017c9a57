package raycast

import (
	"fmt"
	"image"
)

// Texture is an immutable square image of packed 0xRRGGBB texels.
type Texture struct {
	size   int
	texels []uint32 // row-major, size*size
}

// NewTexture wraps row-major texels of a size x size texture.
func NewTexture(size int, texels []uint32) (*Texture, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("size %d: %w", size, ErrTextureSize)
	}
	if len(texels) != size*size {
		return nil, fmt.Errorf("%d texels for size %d: %w", len(texels), size, ErrTextureSize)
	}
	t := &Texture{size: size, texels: make([]uint32, len(texels))}
	copy(t.texels, texels)
	return t, nil
}

// TextureFromImage converts a decoded square image into a Texture.
func TextureFromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("%dx%d image: %w", b.Dx(), b.Dy(), ErrTextureSize)
	}
	size := b.Dx()
	texels := make([]uint32, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			texels[y*size+x] = (r>>8)<<16 | (g>>8)<<8 | bl>>8
		}
	}
	return NewTexture(size, texels)
}

// Size returns the edge length in texels.
func (t *Texture) Size() int { return t.size }

// At returns the texel at column x, row y.
func (t *Texture) At(x, y int) uint32 {
	return t.texels[y*t.size+x]
}

// TextureSet addresses one texture per material index. All textures share
// one size.
type TextureSet struct {
	size     int
	textures []*Texture
}

// NewTextureSet checks that every texture has the same size.
func NewTextureSet(textures ...*Texture) (*TextureSet, error) {
	if len(textures) == 0 {
		return nil, fmt.Errorf("empty set: %w", ErrTextureCount)
	}
	size := textures[0].Size()
	for i, t := range textures {
		if t.Size() != size {
			return nil, fmt.Errorf("texture %d is %d wide, want %d: %w", i, t.Size(), size, ErrTextureSize)
		}
	}
	return &TextureSet{size: size, textures: textures}, nil
}

// Covers returns an error unless the set holds a texture for every material
// the grid may reference.
func (s *TextureSet) Covers(g *Grid) error {
	if len(s.textures) < g.Materials() {
		return fmt.Errorf("%d textures for %d materials: %w", len(s.textures), g.Materials(), ErrTextureCount)
	}
	return nil
}

// Size returns the shared texture edge length.
func (s *TextureSet) Size() int { return s.size }

// Len returns the number of textures.
func (s *TextureSet) Len() int { return len(s.textures) }

// Get returns the texture for a material index.
func (s *TextureSet) Get(material int) *Texture {
	return s.textures[material]
}
