// Package colorspace implements the four color-space conversions the
// indexed-color conversion engine treats as an external collaborator
// (spec §4.1): sRGB -> CIE L*a*b*, sRGB -> linear u16, linear u16 -> sRGB,
// and L*a*b* -> sRGB.
//
// Each function is a pure, stateless transform of a single pixel triple.
// The L*a*b* leg delegates to github.com/lucasb-eyer/go-colorful, which
// already implements the CIE L*a*b* round trip against the D65 reference
// white GIMP's Babl pipeline targets. The linear leg is a small
// gamma-expansion table precomputed once at package init, in the spirit
// of the teacher's sharpyuv gamma tables (precomputed float table, no
// per-call state).
package colorspace

import (
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	gammaTabBits = 12
	gammaTabSize = 1 << gammaTabBits
)

var (
	srgbToLinearTab [gammaTabSize + 1]uint16
	linearToSRGBTab [gammaTabSize + 1]uint8
	gammaTablesOnce sync.Once
)

func srgbChannelToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearChannelToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

func initGammaTables() {
	gammaTablesOnce.Do(func() {
		for i := 0; i <= gammaTabSize; i++ {
			c := float64(i) / float64(gammaTabSize)
			v := srgbChannelToLinear(c)*65535.0 + 0.5
			if v < 0 {
				v = 0
			} else if v > 65535 {
				v = 65535
			}
			srgbToLinearTab[i] = uint16(v)
		}
		for i := 0; i <= gammaTabSize; i++ {
			c := float64(i) / float64(gammaTabSize)
			v := linearChannelToSRGB(c)*255.0 + 0.5
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			linearToSRGBTab[i] = uint8(v)
		}
	})
}

func init() {
	initGammaTables()
}

// RGB is a byte-valued sRGB triple, 0..255 per channel.
type RGB struct {
	R, G, B uint8
}

// LinRGB is a linear-light RGB triple at u16 precision, matching GIMP's
// 16-bit-linear working space for Floyd-Steinberg dithering (spec §4.8).
type LinRGB struct {
	R, G, B uint16
}

// Lab is a CIE L*a*b* triple in the floating-point ranges colorful
// produces (L in [0,100], a/b roughly [-128,127]).
type Lab struct {
	L, A, B float64
}

// SRGBToLab converts an sRGB byte triple to floating point L*a*b*.
func SRGBToLab(c RGB) Lab {
	cc := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	l, a, b := cc.Lab()
	return Lab{L: l, A: a, B: b}
}

// LabToSRGB converts a floating point L*a*b* triple back to an sRGB byte
// triple, clamping to the representable gamut (spec §7: "values outside
// the L*a*b* gamut are clamped to [0,255] after conversion; this is not
// an error").
func LabToSRGB(c Lab) RGB {
	cc := colorful.Lab(c.L, c.A, c.B).Clamped()
	return RGB{
		R: clampByte(cc.R * 255.0),
		G: clampByte(cc.G * 255.0),
		B: clampByte(cc.B * 255.0),
	}
}

// SRGBToLinearU16 converts an sRGB byte triple to linear-light u16.
func SRGBToLinearU16(c RGB) LinRGB {
	return LinRGB{
		R: srgbByteToLinear(c.R),
		G: srgbByteToLinear(c.G),
		B: srgbByteToLinear(c.B),
	}
}

// LinearU16ToSRGB converts a linear-light u16 triple back to sRGB bytes.
func LinearU16ToSRGB(c LinRGB) RGB {
	return RGB{
		R: linearU16ToSRGBByte(c.R),
		G: linearU16ToSRGBByte(c.G),
		B: linearU16ToSRGBByte(c.B),
	}
}

func srgbByteToLinear(v uint8) uint16 {
	idx := int(v) * gammaTabSize / 255
	return srgbToLinearTab[idx]
}

func linearU16ToSRGBByte(v uint16) uint8 {
	idx := int(v) * gammaTabSize / 65535
	return linearToSRGBTab[idx]
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
