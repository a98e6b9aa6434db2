package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tecu23/chess-clock/pkg/presets"
	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

// Choice is what the user picked on the first screen: a preset or a bare type.
type Choice struct {
	Preset string
	Type   timecontrol.Type
}

const presetPrefix = "preset:"

// ChoiceForm lists the presets followed by every time control type. The picked
// entry is stored in selected, to be read with ParseChoice.
func ChoiceForm(registry *presets.Registry, selected *string) *huh.Form {
	var options []huh.Option[string]
	for _, p := range registry.List() {
		label := p.Name
		if p.Description != "" {
			label += "  " + p.Description
		}
		options = append(options, huh.NewOption(label, presetPrefix+p.Name))
	}
	for _, info := range timecontrol.List() {
		options = append(options, huh.NewOption(info.Name+"  (custom settings)", string(info.Type)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Time control").
				Options(options...).
				Value(selected),
		),
	).WithTheme(huh.ThemeBase16())
}

func ParseChoice(v string) Choice {
	if name, ok := strings.CutPrefix(v, presetPrefix); ok {
		return Choice{Preset: name}
	}
	return Choice{Type: timecontrol.Type(v)}
}

// ParamForm collects the configuration of one time control type. Params that
// only apply to some value of another param are placed in their own group,
// hidden until that value is selected.
type ParamForm struct {
	params []timecontrol.Param
	values map[string]*string
	groups []*huh.Group
}

// NewParamForm builds the fields for params, prefilled with their defaults.
func NewParamForm(params []timecontrol.Param) *ParamForm {
	f := &ParamForm{
		params: params,
		values: make(map[string]*string, len(params)),
	}

	var always []huh.Field
	conditional := make(map[timecontrol.Condition][]huh.Field)
	var order []timecontrol.Condition

	for _, p := range params {
		value := fmt.Sprint(p.Default)
		f.values[p.Name] = &value

		field := f.field(p)
		if p.Condition == nil {
			always = append(always, field)
			continue
		}

		key := *p.Condition
		if _, seen := conditional[key]; !seen {
			order = append(order, key)
		}
		conditional[key] = append(conditional[key], field)
	}

	if len(always) > 0 {
		f.groups = append(f.groups, huh.NewGroup(always...))
	}
	for _, cond := range order {
		f.groups = append(f.groups, huh.NewGroup(conditional[cond]...).WithHideFunc(func() bool {
			return f.hidden(cond)
		}))
	}

	return f
}

func (f *ParamForm) field(p timecontrol.Param) huh.Field {
	if p.Kind == timecontrol.KindSelect {
		options := make([]huh.Option[string], 0, len(p.Options))
		for _, o := range p.Options {
			options = append(options, huh.NewOption(o.Label, fmt.Sprint(o.Value)))
		}
		return huh.NewSelect[string]().
			Title(p.Label).
			Options(options...).
			Value(f.values[p.Name])
	}

	input := huh.NewInput().
		Title(p.Label).
		Value(f.values[p.Name]).
		Validate(validateNumber(p.Bounds))
	if p.Bounds != nil {
		input.Description(fmt.Sprintf("%g to %g", p.Bounds.Min, p.Bounds.Max))
	}
	return input
}

func (f *ParamForm) hidden(cond timecontrol.Condition) bool {
	v, ok := f.values[cond.Param]
	return !ok || *v != fmt.Sprint(cond.Value)
}

// Form returns the huh form for the collected groups.
func (f *ParamForm) Form() *huh.Form {
	return huh.NewForm(f.groups...).WithTheme(huh.ThemeBase16())
}

// Set overrides the current value of a param.
func (f *ParamForm) Set(name, value string) {
	if v, ok := f.values[name]; ok {
		*v = value
	}
}

// Config returns the entered values in the shape timecontrol.New expects.
func (f *ParamForm) Config() map[string]any {
	cfg := make(map[string]any, len(f.values))
	for _, p := range f.params {
		cfg[p.Name] = strings.TrimSpace(*f.values[p.Name])
	}
	return cfg
}

func validateNumber(bounds *timecontrol.Bounds) func(string) error {
	return func(s string) error {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		if bounds != nil && (n < bounds.Min || n > bounds.Max) {
			return fmt.Errorf("must be between %g and %g", bounds.Min, bounds.Max)
		}
		return nil
	}
}
