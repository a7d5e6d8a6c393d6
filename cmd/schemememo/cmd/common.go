package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/schemeboot/memoize/internal/config"
	"github.com/schemeboot/memoize/pkg/scheme"
)

func readInput(expression bool, args []string) (string, error) {
	switch {
	case expression:
		if len(args) == 0 {
			return "", fmt.Errorf("no expression provided")
		}
		return args[0], nil
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("error reading file: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("error reading stdin: %w", err)
		}
		return string(data), nil
	}
}

func newMemoizer() (*scheme.Memoizer, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
		cfg = loaded
	}
	m, err := scheme.NewMemoizer(scheme.Options{
		AllowOtherKeysDefault: cfg.AllowOtherKeysDefault,
		GensymPrefix:          cfg.GensymPrefix,
		ModuleSearchPath:      cfg.ModuleSearchPath,
	})
	if err != nil {
		return nil, fmt.Errorf("error seeding module search path: %w", err)
	}
	return m, nil
}
