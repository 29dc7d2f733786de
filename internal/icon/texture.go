package icon

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

// PlaceholderGrey fills textures that failed to load.
var PlaceholderGrey = colorful.Color{R: 0xcc / 255.0, G: 0xcc / 255.0, B: 0xcc / 255.0}

// Texture is a decoded image in straight (non-premultiplied) colour.
type Texture struct {
	W, H        int
	Pix         []colorful.Color
	Alpha       []float64
	Placeholder bool
}

// Placeholder returns the flat grey 32×32 texture.
func Placeholder() *Texture {
	t := &Texture{W: 32, H: 32, Placeholder: true}
	t.Pix = make([]colorful.Color, t.W*t.H)
	t.Alpha = make([]float64, t.W*t.H)
	for i := range t.Pix {
		t.Pix[i] = PlaceholderGrey
		t.Alpha[i] = 1
	}
	return t
}

// Decode converts any image.Image into a Texture.
func Decode(img image.Image) *Texture {
	b := img.Bounds()
	t := &Texture{W: b.Dx(), H: b.Dy()}
	t.Pix = make([]colorful.Color, t.W*t.H)
	t.Alpha = make([]float64, t.W*t.H)
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := y*t.W + x
			if a == 0 {
				continue
			}
			t.Alpha[i] = float64(a) / 0xffff
			t.Pix[i] = colorful.Color{
				R: float64(r) / float64(a),
				G: float64(g) / float64(a),
				B: float64(bl) / float64(a),
			}
		}
	}
	return t
}

// LoadTexture decodes a PNG, JPEG or GIF file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}
	t := Decode(img)
	if t.W == 0 || t.H == 0 {
		return nil, fmt.Errorf("icon %s is empty", path)
	}
	return t, nil
}

// LoadOrPlaceholder never fails: a missing or broken icon is logged and
// replaced by the grey placeholder.
func LoadOrPlaceholder(path string) *Texture {
	if path == "" {
		return Placeholder()
	}
	t, err := LoadTexture(path)
	if err != nil {
		slog.Warn("icon texture unavailable, using placeholder", "path", path, "error", err)
		return Placeholder()
	}
	return t
}

// Aspect is width over height, 1 for an empty texture.
func (t *Texture) Aspect() float64 {
	if t == nil || t.W == 0 || t.H == 0 {
		return 1
	}
	return float64(t.W) / float64(t.H)
}

// Sample returns the nearest texel at (u, v), v = 0 being the top row.
func (t *Texture) Sample(u, v float64) (colorful.Color, float64) {
	if t == nil || t.W == 0 || t.H == 0 {
		return PlaceholderGrey, 1
	}
	x := clampInt(int(math.Floor(u*float64(t.W))), 0, t.W-1)
	y := clampInt(int(math.Floor(v*float64(t.H))), 0, t.H-1)
	i := y*t.W + x
	return t.Pix[i], t.Alpha[i]
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
