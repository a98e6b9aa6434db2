package timecontrol

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ParamKind tells a form builder which widget a parameter needs
type ParamKind string

// Parameter kinds
const (
	KindNumber ParamKind = "number"
	KindSelect ParamKind = "select"
)

// Param declares one externally editable configuration value.
// Bounds are documentation for the form collaborator, they are not enforced here.
type Param struct {
	Name      string     `json:"name"`
	Kind      ParamKind  `json:"kind"`
	Label     string     `json:"label"`
	Default   any        `json:"default"`
	Bounds    *Bounds    `json:"bounds,omitempty"`
	Options   []Option   `json:"options,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
}

// Bounds is the legal range of a number parameter
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Option is one legal value of a select parameter
type Option struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Condition makes a parameter relevant only when another parameter has the given value
type Condition struct {
	Param string `json:"param"`
	Value any    `json:"value"`
}

// Visible reports whether the parameter applies given the other values.
func (p Param) Visible(values Values) bool {
	if p.Condition == nil {
		return true
	}
	return fmt.Sprint(values[p.Condition.Param]) == fmt.Sprint(p.Condition.Value)
}

func numberParam(name, label string, def, min, max float64) Param {
	return Param{
		Name:    name,
		Kind:    KindNumber,
		Label:   label,
		Default: def,
		Bounds:  &Bounds{Min: min, Max: max},
	}
}

func selectParam(name, label string, def any, opts ...Option) Param {
	return Param{
		Name:    name,
		Kind:    KindSelect,
		Label:   label,
		Default: def,
		Options: opts,
	}
}

func yesNoParam(name, label string) Param {
	return selectParam(name, label, false, Option{Label: "No", Value: false}, Option{Label: "Yes", Value: true})
}

func (p Param) when(param string, value any) Param {
	p.Condition = &Condition{Param: param, Value: value}
	return p
}

// Values is a flat configuration record resolved against a parameter schema.
// Numbers are stored as float64 and selects as the matching option value.
type Values map[string]any

// Resolve fills every parameter of the schema from cfg, falling back to the declared
// default for missing keys. Keys that are not in the schema are ignored.
func Resolve(params []Param, cfg map[string]any) (Values, error) {
	values := make(Values, len(params))
	for _, p := range params {
		raw, ok := cfg[p.Name]
		if !ok || raw == nil {
			values[p.Name] = p.canonical(p.Default)
			continue
		}

		v, err := p.coerce(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, p.Name, err)
		}
		values[p.Name] = v
	}
	return values, nil
}

func (p Param) canonical(v any) any {
	if p.Kind == KindNumber {
		if f, err := toFloat(v); err == nil {
			return f
		}
	}
	return v
}

func (p Param) coerce(raw any) (any, error) {
	switch p.Kind {
	case KindNumber:
		return toFloat(raw)
	case KindSelect:
		for _, opt := range p.Options {
			if fmt.Sprint(opt.Value) == fmt.Sprint(raw) {
				return opt.Value, nil
			}
		}
		return nil, fmt.Errorf("%v is not one of the options", raw)
	default:
		return raw, nil
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("%v (%T) is not a number", v, v)
	}
}

// Number returns a number value, zero when missing.
func (v Values) Number(name string) float64 {
	f, err := toFloat(v[name])
	if err != nil {
		return 0
	}
	return f
}

// Int returns a number value truncated to an int.
func (v Values) Int(name string) int {
	return int(v.Number(name))
}

// Bool returns a select value holding a boolean.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// String returns a select value holding a string.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}
