package shadertypes

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
)

// Validation errors. The types do not enforce these; Validate reports them.
var (
	ErrNonUnitNormal = errors.New("normal is not unit length")
	ErrFogRange      = errors.New("fog far distance must exceed fog near distance")
	ErrFlagValue     = errors.New("flag must be 0 or 1")
	ErrUnitRange     = errors.New("value outside [0, 1]")
	ErrNormalMatrix  = errors.New("normal matrix is not the inverse-transpose of the model-view matrix")
	ErrNonFinite     = errors.New("value is not finite")
	ErrWavePitch     = errors.New("wave pitch must be positive")
)

const (
	normalTolerance = 1e-3
	matrixTolerance = 1e-4
)

// Validate checks that the normal is unit length.
func (v *GroundVertex) Validate() error {
	if math32.Abs(v.Normal.Len()-1) > normalTolerance {
		return fmt.Errorf("normal %v: %w", v.Normal, ErrNonUnitNormal)
	}
	return nil
}

// Validate checks NormalMat against ModelViewMat.
func (u *GroundVertexUniforms) Validate() error {
	want := NormalMatrix(u.ModelViewMat)
	if !u.NormalMat.ApproxEqualThreshold(want, matrixTolerance) {
		return ErrNormalMatrix
	}
	return nil
}

// Validate checks flags, fog ordering and channel ranges.
func (u *GroundFragmentUniforms) Validate() error {
	var err error
	err = multierr.Append(err, checkFlag("lightMapUse", u.LightMapUse))
	err = multierr.Append(err, checkFog(u.FogUse, u.FogNear, u.FogFar, u.FogColor))
	err = multierr.Append(err, checkLight(u.LightAmbient, u.LightDiffuse, u.LightOpacity))
	return err
}

// Validate checks that the position and texture coordinate are finite.
func (v *WaterVertex) Validate() error {
	var err error
	if !finite(v.Position[:]...) {
		err = multierr.Append(err, fmt.Errorf("position %v: %w", v.Position, ErrNonFinite))
	}
	if !finite(v.TextureCoordinate[:]...) {
		err = multierr.Append(err, fmt.Errorf("textureCoordinate %v: %w", v.TextureCoordinate, ErrNonFinite))
	}
	return err
}

func finite(values ...float32) bool {
	for _, c := range values {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Validate checks that the wave pitch is positive.
func (u *WaterVertexUniforms) Validate() error {
	if u.WavePitch <= 0 {
		return fmt.Errorf("wavePitch=%g: %w", u.WavePitch, ErrWavePitch)
	}
	return nil
}

// Validate checks flags, fog ordering, channel ranges and opacity.
func (u *WaterFragmentUniforms) Validate() error {
	var err error
	err = multierr.Append(err, checkFog(u.FogUse, u.FogNear, u.FogFar, u.FogColor))
	err = multierr.Append(err, checkLight(u.LightAmbient, u.LightDiffuse, u.LightOpacity))
	err = multierr.Append(err, checkUnit("opacity", u.Opacity))
	return err
}

func checkFlag(name string, v int32) error {
	if v != 0 && v != 1 {
		return fmt.Errorf("%s=%d: %w", name, v, ErrFlagValue)
	}
	return nil
}

func checkUnit(name string, v float32) error {
	if v < 0 || v > 1 || math32.IsNaN(v) {
		return fmt.Errorf("%s=%g: %w", name, v, ErrUnitRange)
	}
	return nil
}

func checkColor(name string, c mgl32.Vec3) error {
	var err error
	for i, ch := range c {
		err = multierr.Append(err, checkUnit(fmt.Sprintf("%s[%d]", name, i), ch))
	}
	return err
}

func checkFog(use int32, near, far float32, color mgl32.Vec3) error {
	err := checkFlag("fogUse", use)
	if use == 1 {
		if far <= near {
			err = multierr.Append(err, fmt.Errorf("fogNear=%g fogFar=%g: %w", near, far, ErrFogRange))
		}
		err = multierr.Append(err, checkColor("fogColor", color))
	}
	return err
}

func checkLight(ambient, diffuse mgl32.Vec3, opacity float32) error {
	return multierr.Combine(
		checkColor("lightAmbient", ambient),
		checkColor("lightDiffuse", diffuse),
		checkUnit("lightOpacity", opacity),
	)
}
