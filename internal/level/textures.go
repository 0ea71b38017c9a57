package level

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"math"

	"github.com/aquilax/go-perlin"

	"raycaster/internal/raycast"
)

// Procedural texture names, in material order.
var proceduralNames = []string{
	"eagle", "redbrick", "purplestone", "greystone",
	"bluestone", "mossy", "wood", "colorstone",
}

// Textures returns one texture per material. Image files listed by the
// level are decoded from its asset filesystem; otherwise procedural
// textures of the given size are generated.
func (l *Level) Textures(size int) (*raycast.TextureSet, error) {
	var textures []*raycast.Texture
	if len(l.textures) > 0 {
		for _, name := range l.textures {
			tex, err := decodeTexture(l.assets, name)
			if err != nil {
				return nil, err
			}
			textures = append(textures, tex)
		}
	} else {
		for m := 0; m < l.Grid.Materials(); m++ {
			tex, err := Procedural(proceduralNames[m%len(proceduralNames)], size)
			if err != nil {
				return nil, err
			}
			textures = append(textures, tex)
		}
	}
	set, err := raycast.NewTextureSet(textures...)
	if err != nil {
		return nil, err
	}
	if err := set.Covers(l.Grid); err != nil {
		return nil, err
	}
	return set, nil
}

func decodeTexture(fsys fs.FS, name string) (*raycast.Texture, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening texture %q: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding texture %q: %w", name, err)
	}
	tex, err := raycast.TextureFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}
	return tex, nil
}

// Procedural generates one of the named pattern textures.
func Procedural(name string, size int) (*raycast.Texture, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown procedural texture %q", name)
	}
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("size %d: %w", size, raycast.ErrTextureSize)
	}
	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, noiseSeed)
	texels := make([]uint32, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			texels[y*size+x] = gen(x, y, size, noise)
		}
	}
	return raycast.NewTexture(size, texels)
}

// Perlin parameters for the noise-based textures. The seed is fixed so a
// material always looks the same.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
	noiseSeed    = 1992
)

type generator func(x, y, size int, noise *perlin.Perlin) uint32

var generators = map[string]generator{
	// Red diagonal cross on black.
	"eagle": func(x, y, size int, _ *perlin.Perlin) uint32 {
		if x != y && x != size-y-1 {
			return 0
		}
		return uint32(65536 * 254)
	},
	"redbrick": func(x, y, size int, _ *perlin.Perlin) uint32 {
		if x%16 == 0 || y%16 == 0 {
			return 0x5A5A5A
		}
		return 0xA82020
	},
	"purplestone": func(x, y, size int, _ *perlin.Perlin) uint32 {
		c := scaled(x^y, size)
		return c<<16 | c
	},
	"greystone": func(x, y, size int, _ *perlin.Perlin) uint32 {
		c := scaled(x^y, size)
		return c<<16 | c<<8 | c
	},
	"bluestone": func(x, y, size int, _ *perlin.Perlin) uint32 {
		return scaled(y, size)
	},
	// Grey stone with green moss where the noise field is high.
	"mossy": func(x, y, size int, noise *perlin.Perlin) uint32 {
		n := sample(noise, x, y, size, 4)
		stone := 0x60 + scaled(x^y, size)/4
		if n > 0.55 {
			g := uint32(0x50 + n*0x60)
			return (stone/3)<<16 | g<<8 | stone/4
		}
		return stone<<16 | stone<<8 | stone
	},
	// Vertical grain bent by low-frequency noise.
	"wood": func(x, y, size int, noise *perlin.Perlin) uint32 {
		n := sample(noise, x, y, size, 2)
		grain := math.Sin((float64(x)/float64(size)*8 + n*4) * math.Pi)
		c := uint32(0x70 + 0x30*grain)
		return c<<16 | (c/2)<<8 | c/6
	},
	// Red on green gradient with a blue x-or pattern.
	"colorstone": func(x, y, size int, _ *perlin.Perlin) uint32 {
		return scaled(x*y, size*size)<<16 | scaled(y, size)<<8 | scaled(x^y, size)
	},
}

// sample reads the noise field in [0, 1] with freq periods across the texture.
func sample(noise *perlin.Perlin, x, y, size int, freq float64) float64 {
	u := float64(x) / float64(size) * freq
	v := float64(y) / float64(size) * freq
	return math.Max(0, math.Min(1, (noise.Noise2D(u, v)+1)/2))
}

// scaled maps v in [0, limit) to a channel value in [0, 255].
func scaled(v, limit int) uint32 {
	return uint32(v * 256 / limit)
}
