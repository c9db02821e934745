package formats

import "fmt"

// rswMinObjectSize is the smallest encoded object, a light source.
const rswMinObjectSize = 4 + 80 + 12 + 12 + 4

// RSWObjectType identifies the kind of a placed object.
type RSWObjectType int32

const (
	RSWObjectModel  RSWObjectType = 1
	RSWObjectLight  RSWObjectType = 2
	RSWObjectSound  RSWObjectType = 3
	RSWObjectEffect RSWObjectType = 4
)

// String returns a human-readable object type name.
func (t RSWObjectType) String() string {
	switch t {
	case RSWObjectModel:
		return "Model"
	case RSWObjectLight:
		return "Light"
	case RSWObjectSound:
		return "Sound"
	case RSWObjectEffect:
		return "Effect"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// RSWModel is an RSM model instance.
type RSWModel struct {
	Name      string // v1.3+
	AnimType  int32
	AnimSpeed float32
	BlockType int32
	ModelName string
	NodeName  string
	Position  [3]float32
	Rotation  [3]float32 // degrees
	Scale     [3]float32
}

// RSWLightSource is a point light baked into the lightmaps.
type RSWLightSource struct {
	Name     string
	Position [3]float32
	Color    [3]float32
	Range    float32
}

// RSWSoundSource is an ambient sound emitter.
type RSWSoundSource struct {
	Name     string
	File     string
	Position [3]float32
	Volume   float32
	Width    int32
	Height   int32
	Range    float32
	Cycle    float32 // seconds, v2.0+
}

// RSWEffectSource is a particle effect emitter.
type RSWEffectSource struct {
	Name     string
	Position [3]float32
	EffectID int32
	Delay    float32
	Param    [4]float32
}

// RSWObject is one placed object. Exactly one pointer matching Type is set.
type RSWObject struct {
	Type   RSWObjectType
	Model  *RSWModel
	Light  *RSWLightSource
	Sound  *RSWSoundSource
	Effect *RSWEffectSource
}

// CountByType returns the number of objects of each type.
func (w *RSW) CountByType() map[RSWObjectType]int {
	counts := make(map[RSWObjectType]int)
	for _, obj := range w.Objects {
		counts[obj.Type]++
	}
	return counts
}

// GetLights returns all point lights.
func (w *RSW) GetLights() []*RSWLightSource {
	var lights []*RSWLightSource
	for _, obj := range w.Objects {
		if obj.Light != nil {
			lights = append(lights, obj.Light)
		}
	}
	return lights
}

func readRSWObject(r *reader, v RSWVersion) (RSWObject, error) {
	obj := RSWObject{}
	r.read("object type", &obj.Type)
	if r.err != nil {
		return obj, r.err
	}

	switch obj.Type {
	case RSWObjectModel:
		m := &RSWModel{}
		if v.AtLeast(1, 3) {
			m.Name = r.cstring("model name", 40)
			r.read("model animation type", &m.AnimType)
			r.read("model animation speed", &m.AnimSpeed)
			r.read("model block type", &m.BlockType)
		}
		if v.AtLeast(2, 6) && v.BuildNumber >= 162 {
			r.bytes("model collision flag", 1)
		}
		m.ModelName = r.cstring("model file", 80)
		m.NodeName = r.cstring("model node", 80)
		r.read("model position", &m.Position)
		r.read("model rotation", &m.Rotation)
		r.read("model scale", &m.Scale)
		obj.Model = m
	case RSWObjectLight:
		l := &RSWLightSource{}
		l.Name = r.cstring("light name", 80)
		r.read("light position", &l.Position)
		r.read("light color", &l.Color)
		r.read("light range", &l.Range)
		obj.Light = l
	case RSWObjectSound:
		s := &RSWSoundSource{}
		s.Name = r.cstring("sound name", 80)
		s.File = r.cstring("sound file", 80)
		r.read("sound position", &s.Position)
		r.read("sound volume", &s.Volume)
		r.read("sound width", &s.Width)
		r.read("sound height", &s.Height)
		r.read("sound range", &s.Range)
		if v.AtLeast(2, 0) {
			r.read("sound cycle", &s.Cycle)
		}
		obj.Sound = s
	case RSWObjectEffect:
		e := &RSWEffectSource{}
		e.Name = r.cstring("effect name", 80)
		r.read("effect position", &e.Position)
		r.read("effect ID", &e.EffectID)
		r.read("effect delay", &e.Delay)
		r.read("effect parameters", &e.Param)
		obj.Effect = e
	default:
		return obj, fmt.Errorf("%w: %d", ErrUnknownObjectType, obj.Type)
	}
	return obj, r.err
}
