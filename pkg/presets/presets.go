// Package presets holds named time control configurations such as "blitz" or "rapid"
package presets

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v2"

	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named configuration for one of the time control types.
type Preset struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Type        string         `yaml:"type" json:"type"`
	Config      map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
}

// Defaults returns the built-in presets.
func Defaults() []Preset {
	return []Preset{
		{
			Name:        "bullet",
			Description: "1 minute, no increment",
			Type:        string(timecontrol.TypeIncrement),
			Config:      map[string]any{"initialTimeMinutes": 1, "incrementSeconds": 0},
		},
		{
			Name:        "blitz",
			Description: "3 minutes plus 2 seconds per move",
			Type:        string(timecontrol.TypeIncrement),
			Config:      map[string]any{"initialTimeMinutes": 3, "incrementSeconds": 2},
		},
		{
			Name:        "rapid",
			Description: "10 minutes plus 5 seconds per move",
			Type:        string(timecontrol.TypeIncrement),
			Config:      map[string]any{"initialTimeMinutes": 10, "incrementSeconds": 5},
		},
		{
			Name:        "classical",
			Description: "90 minutes for 40 moves, 30 minutes for 20 moves, then 15 minutes plus 30 seconds per move",
			Type:        string(timecontrol.TypeTournament),
			Config: map[string]any{
				"phase1Minutes": 90, "phase1Moves": 40, "phase1IncrementSeconds": 0,
				"phase2Minutes": 30, "phase2Moves": 20, "phase2IncrementSeconds": 0,
				"phase3Minutes": 15, "phase3IncrementSeconds": 30,
			},
		},
		{
			Name:        "byo-yomi",
			Description: "30 minutes then 5 periods of 30 seconds",
			Type:        string(timecontrol.TypeByoYomi),
			Config:      map[string]any{"initialTimeMin": 30, "periodTimeSec": 30, "numPeriods": 5},
		},
		{
			Name:        "canadian",
			Description: "25 minutes then 20 moves every 5 minutes",
			Type:        string(timecontrol.TypeCanadian),
			Config:      map[string]any{"initialTimeMin": 25, "overtimeMin": 5, "movesRequired": 20},
		},
		{
			Name:        "hourglass",
			Description: "3 minutes of sand",
			Type:        string(timecontrol.TypeHourglass),
			Config:      map[string]any{"initialTimeMinutes": 3},
		},
	}
}

// LoadFile reads a YAML list of presets.
func LoadFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}

	var list []Preset
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", path, err)
	}
	return list, nil
}

// Registry is a concurrency safe set of presets, kept in insertion order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	presets map[string]Preset
}

// NewRegistry creates a registry seeded with the given presets.
func NewRegistry(list ...Preset) (*Registry, error) {
	r := &Registry{presets: make(map[string]Preset)}
	for _, p := range list {
		if err := r.Add(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add validates p by building it and stores it, replacing a preset of the same name.
func (r *Registry) Add(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("preset without a name: %w", timecontrol.ErrInvalidValue)
	}
	if _, err := build(p); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.presets[p.Name]; !exists {
		r.order = append(r.order, p.Name)
	}
	r.presets[p.Name] = p
	return nil
}

// Get returns the preset with the given name.
func (r *Registry) Get(name string) (Preset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return p, nil
}

// List returns the presets in the order they were added.
func (r *Registry) List() []Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Preset, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.presets[name])
	}
	return list
}

// Names returns the preset names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := append([]string(nil), r.order...)
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Build creates a fresh time control from the named preset.
func (r *Registry) Build(name string) (timecontrol.TimeControl, error) {
	p, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return build(p)
}

func build(p Preset) (timecontrol.TimeControl, error) {
	t, err := timecontrol.ParseType(p.Type)
	if err != nil {
		return nil, err
	}
	return timecontrol.New(t, p.Config)
}
