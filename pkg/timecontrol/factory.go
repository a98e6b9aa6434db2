package timecontrol

import "fmt"

type registration struct {
	info   Info
	params []Param
	build  func(Values) TimeControl
}

// registry is ordered the way controls are presented
var registry = []registration{
	{
		info:   Info{Type: TypeClassical, Name: "Classical", Description: "Simple countdown timer with no additional time"},
		params: classicalParams,
		build:  func(v Values) TimeControl { return NewClassical(classicalConfig(v)) },
	},
	{
		info:   Info{Type: TypeIncrement, Name: "Increment (Fischer)", Description: "A fixed amount of time is added to the clock after each move"},
		params: incrementParams,
		build:  func(v Values) TimeControl { return NewIncrement(incrementConfig(v)) },
	},
	{
		info:   Info{Type: TypeBronstein, Name: "Bronstein Delay", Description: "The time used for a move is added back, up to the maximum delay"},
		params: bronsteinParams,
		build:  func(v Values) TimeControl { return NewBronstein(bronsteinConfig(v)) },
	},
	{
		info:   Info{Type: TypeHourglass, Name: "Hourglass", Description: "While one clock runs down the opponent's clock runs up"},
		params: hourglassParams,
		build:  func(v Values) TimeControl { return NewHourglass(hourglassConfig(v)) },
	},
	{
		info:   Info{Type: TypeByoYomi, Name: "Byo-Yomi", Description: "After main time, fixed length periods for every move"},
		params: byoYomiParams,
		build:  func(v Values) TimeControl { return NewByoYomi(byoYomiConfig(v)) },
	},
	{
		info:   Info{Type: TypeCanadian, Name: "Canadian Overtime", Description: "After main time, a block of time must cover a number of moves"},
		params: canadianParams,
		build:  func(v Values) TimeControl { return NewCanadian(canadianConfig(v)) },
	},
	{
		info:   Info{Type: TypeTournament, Name: "Tournament", Description: "Three phases with their own time, increment and move quota"},
		params: tournamentParams,
		build:  func(v Values) TimeControl { return NewTournament(tournamentConfig(v)) },
	},
	{
		info:   Info{Type: TypeCustom, Name: "Custom", Description: "Main time, increment, per move extra time and optional overtime stages"},
		params: customParams,
		build:  func(v Values) TimeControl { return NewCustom(customConfig(v)) },
	},
}

func lookup(t Type) (registration, error) {
	for _, r := range registry {
		if r.info.Type == t {
			return r, nil
		}
	}
	return registration{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
}

// New builds a control of the given type. Missing config keys take the parameter default.
func New(t Type, cfg map[string]any) (TimeControl, error) {
	r, err := lookup(t)
	if err != nil {
		return nil, err
	}

	values, err := Resolve(r.params, cfg)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", t, err)
	}

	return r.build(values), nil
}

// List returns every available control type.
func List() []Info {
	infos := make([]Info, 0, len(registry))
	for _, r := range registry {
		infos = append(infos, r.info)
	}
	return infos
}

// ParamsFor returns the parameter schema of a control type without building it.
func ParamsFor(t Type) ([]Param, error) {
	r, err := lookup(t)
	if err != nil {
		return nil, err
	}
	return cloneParams(r.params), nil
}

// ParseType validates a type tag coming from the outside.
func ParseType(s string) (Type, error) {
	r, err := lookup(Type(s))
	if err != nil {
		return "", err
	}
	return r.info.Type, nil
}

func cloneParams(params []Param) []Param {
	out := make([]Param, len(params))
	copy(out, params)
	return out
}
