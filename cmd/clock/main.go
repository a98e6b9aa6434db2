// Package main runs a two player clock in the terminal
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"github.com/tecu23/chess-clock/internal/tui"
	"github.com/tecu23/chess-clock/pkg/presets"
	"github.com/tecu23/chess-clock/pkg/timecontrol"
)

func main() {
	preset := flag.String("preset", "", "start the named preset without asking")
	presetsFile := flag.String("presets", "", "YAML file with additional presets")
	logFile := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	logger, err := initLogger(*logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(*preset, *presetsFile, logger); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(preset, presetsFile string, logger *zap.Logger) error {
	registry, err := presets.NewRegistry(presets.Defaults()...)
	if err != nil {
		return err
	}
	if presetsFile != "" {
		list, err := presets.LoadFile(presetsFile)
		if err != nil {
			return err
		}
		for _, p := range list {
			if err := registry.Add(p); err != nil {
				return err
			}
		}
	}

	choice := tui.Choice{Preset: preset}
	if preset == "" {
		var selected string
		if err := tui.ChoiceForm(registry, &selected).Run(); err != nil {
			return err
		}
		choice = tui.ParseChoice(selected)
	}

	control, title, err := build(registry, choice)
	if err != nil {
		return err
	}

	logger.Debug("starting clock", zap.String("title", title), zap.String("type", string(control.Type())))

	_, err = tea.NewProgram(tui.NewModel(title, control, nil, logger), tea.WithAltScreen()).Run()
	return err
}

// build creates the control for a preset directly, or asks for the settings of a bare type.
func build(registry *presets.Registry, choice tui.Choice) (timecontrol.TimeControl, string, error) {
	if choice.Preset != "" {
		control, err := registry.Build(choice.Preset)
		return control, choice.Preset, err
	}

	params, err := timecontrol.ParamsFor(choice.Type)
	if err != nil {
		return nil, "", err
	}

	form := tui.NewParamForm(params)
	if err := form.Form().Run(); err != nil {
		return nil, "", err
	}

	control, err := timecontrol.New(choice.Type, form.Config())
	return control, string(choice.Type), err
}

func initLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
