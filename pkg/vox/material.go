package vox

import "strconv"

// Dict is a string→string mapping that remembers first-insertion order.
// MATL dictionaries are order-sensitive on the wire; a repeated key keeps
// its original position but takes the later value.
type Dict struct {
	keys   []string
	values map[string]string
}

func NewDict() *Dict {
	return &Dict{values: make(map[string]string)}
}

func (d *Dict) Set(key, value string) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *Dict) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *Dict) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	return d.keys
}

// PropKind says how a material property value should be interpreted by a
// consumer. The wire format only carries strings.
type PropKind int

const (
	PropString PropKind = iota
	PropFloat
	PropBool
)

// PropValue is a material property after interpretation. Exactly one of
// Str/Float/Bool is meaningful, selected by Kind. Raw always holds the wire
// string.
type PropValue struct {
	Kind  PropKind
	Raw   string
	Str   string
	Float float64
	Bool  bool
}

// propKinds maps the MagicaVoxel material keys with known numeric or boolean
// meaning. Keys not listed stay strings.
var propKinds = map[string]PropKind{
	"_weight": PropFloat,
	"_rough":  PropFloat,
	"_spec":   PropFloat,
	"_ior":    PropFloat,
	"_att":    PropFloat,
	"_flux":   PropFloat,
	"_alpha":  PropFloat,
	"_d":      PropFloat,
	"_g":      PropFloat,
	"_sp":     PropFloat,
	"_ri":     PropFloat,
	"_emit":   PropFloat,
	"_metal":  PropFloat,
	"_ldr":    PropFloat,
	"_trans":  PropFloat,

	"_plastic": PropBool,
	"_unit":    PropBool,
}

// TypedProperties interprets a decoded property dictionary using the known
// key table. A value that fails to parse as its declared kind falls back to
// a string; decode never fails over a material annotation. The returned map
// does not alias the dictionary.
func TypedProperties(d *Dict) map[string]PropValue {
	out := make(map[string]PropValue, d.Len())
	for _, key := range d.Keys() {
		raw, _ := d.Get(key)
		pv := PropValue{Kind: PropString, Raw: raw, Str: raw}
		switch propKinds[key] {
		case PropFloat:
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				pv = PropValue{Kind: PropFloat, Raw: raw, Float: f}
			}
		case PropBool:
			if b, err := strconv.ParseBool(raw); err == nil {
				pv = PropValue{Kind: PropBool, Raw: raw, Bool: b}
			}
		}
		out[key] = pv
	}
	return out
}
