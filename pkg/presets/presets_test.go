package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

func TestDefaultsBuild(t *testing.T) {
	r, err := NewRegistry(Defaults()...)
	require.NoError(t, err)

	for _, p := range r.List() {
		tc, err := r.Build(p.Name)
		require.NoError(t, err, p.Name)
		assert.Equal(t, p.Type, string(tc.Type()), p.Name)
	}
}

func TestBuild_Blitz(t *testing.T) {
	r, err := NewRegistry(Defaults()...)
	require.NoError(t, err)

	tc, err := r.Build("blitz")
	require.NoError(t, err)
	assert.Equal(t, int64(180_000), tc.RemainingTime(timecontrol.PlayerOne).RemainingMs)

	tc.SwitchPlayer()
	assert.Equal(t, int64(182_000), tc.RemainingTime(timecontrol.PlayerOne).RemainingMs)
}

func TestBuild_ReturnsFreshControls(t *testing.T) {
	r, err := NewRegistry(Defaults()...)
	require.NoError(t, err)

	a, err := r.Build("rapid")
	require.NoError(t, err)
	b, err := r.Build("rapid")
	require.NoError(t, err)

	a.SetRemainingTime(timecontrol.PlayerOne, 1)
	assert.Equal(t, int64(600_000), b.RemainingTime(timecontrol.PlayerOne).RemainingMs)
}

func TestGet_Unknown(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	_, err = r.Get("armageddon")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	_, err = r.Build("armageddon")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestAdd_Validates(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	err = r.Add(Preset{Name: "sundial", Type: "sundial"})
	assert.ErrorIs(t, err, timecontrol.ErrUnknownType)

	err = r.Add(Preset{Name: "odd", Type: "classical", Config: map[string]any{"initialTimeMinutes": "soon"}})
	assert.ErrorIs(t, err, timecontrol.ErrInvalidValue)

	err = r.Add(Preset{Type: "classical"})
	assert.ErrorIs(t, err, timecontrol.ErrInvalidValue)

	assert.Empty(t, r.List())
}

func TestAdd_ReplacesKeepingOrder(t *testing.T) {
	r, err := NewRegistry(
		Preset{Name: "a", Type: "classical"},
		Preset{Name: "b", Type: "hourglass"},
	)
	require.NoError(t, err)

	require.NoError(t, r.Add(Preset{Name: "a", Type: "increment"}))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "increment", list[0].Type)
	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	data := `
- name: club
  description: Club night
  type: increment
  config:
    initialTimeMinutes: 15
    incrementSeconds: 10
- name: go-club
  type: custom
  config:
    initialMinutes: 20
    overtimeMode: custom
    overtimeStages: 2
    otInitialMinutes: 1
    otAccumulate: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	list, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Club night", list[0].Description)

	r, err := NewRegistry(list...)
	require.NoError(t, err)

	tc, err := r.Build("club")
	require.NoError(t, err)
	assert.Equal(t, int64(900_000), tc.RemainingTime(timecontrol.PlayerTwo).RemainingMs)

	tc, err = r.Build("go-club")
	require.NoError(t, err)
	assert.Equal(t, timecontrol.TypeCustom, tc.Type())
	assert.Equal(t, int64(1_200_000), tc.RemainingTime(timecontrol.PlayerOne).RemainingMs)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unterminated"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}
