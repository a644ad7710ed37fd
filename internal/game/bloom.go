package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// brightPass keeps the pixels whose luminance exceeds Threshold, with a
// soft knee.
const brightPass = `//kage:unit pixels

package main

var Threshold float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	c := imageSrc0At(srcPos)
	l := dot(c.rgb, vec3(0.2126, 0.7152, 0.0722))
	return c * smoothstep(Threshold, Threshold+0.1, l)
}
`

// bloom approximates an unreal-bloom pass: bright pixels are extracted,
// blurred by repeated linear downscaling, and added back onto the source.
type bloom struct {
	shader *ebiten.Shader
	bright *ebiten.Image
	levels []*ebiten.Image
}

func newBloom(width, height int) (*bloom, error) {
	s, err := ebiten.NewShader([]byte(brightPass))
	if err != nil {
		return nil, fmt.Errorf("compile bloom shader: %w", err)
	}

	b := &bloom{
		shader: s,
		bright: ebiten.NewImage(width, height),
	}
	w, h := width, height
	for range 3 {
		w, h = max(w/config.BloomDownscale, 1), max(h/config.BloomDownscale, 1)
		b.levels = append(b.levels, ebiten.NewImage(w, h))
	}
	return b, nil
}

// weights spreads intensity across blur levels; a larger radius shifts
// weight toward the coarser levels.
func weights(intensity, radius float64) [3]float64 {
	r := min(max(radius/2, 0), 1)
	return [3]float64{
		intensity * (1 - 0.5*r),
		intensity * 0.5,
		intensity * r,
	}
}

func (b *bloom) apply(dst *ebiten.Image, p config.Params) {
	if p.GlowIntensity <= 0 {
		return
	}

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	b.bright.Clear()
	b.bright.DrawRectShader(w, h, b.shader, &ebiten.DrawRectShaderOptions{
		Uniforms: map[string]any{"Threshold": float32(p.GlowThreshold)},
		Images:   [4]*ebiten.Image{dst},
	})

	src := b.bright
	for _, level := range b.levels {
		level.Clear()
		sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
		lw, lh := level.Bounds().Dx(), level.Bounds().Dy()

		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(float64(lw)/float64(sw), float64(lh)/float64(sh))
		level.DrawImage(src, op)
		src = level
	}

	wts := weights(p.GlowIntensity, p.GlowRadius)
	for i, level := range b.levels {
		k := float32(wts[i])
		if k <= 0 {
			continue
		}
		lw, lh := level.Bounds().Dx(), level.Bounds().Dy()

		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear, Blend: ebiten.BlendLighter}
		op.GeoM.Scale(float64(w)/float64(lw), float64(h)/float64(lh))
		op.ColorScale.Scale(k, k, k, k)
		dst.DrawImage(level, op)
	}
}
