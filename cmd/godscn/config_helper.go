package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/godscn/internal/config"
	"github.com/ludo-technologies/godscn/service"
)

// GetExplicitFlags extracts which flags were explicitly set from a cobra command
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	explicitFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			explicitFlags[f.Name] = true
		})
	}
	return explicitFlags
}

// configTarget is what the configuration is resolved from: an explicit
// config file, or the directory of the first analyzed path
func configTarget(configPath string, args []string) string {
	if configPath != "" {
		return configPath
	}
	if len(args) == 0 {
		return ""
	}
	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return ""
	}
	if !info.IsDir() {
		return filepath.Dir(target)
	}
	return target
}

// loadProjectConfig loads the full configuration for the command's targets
func loadProjectConfig(configPath string, args []string) (*config.Config, error) {
	return service.NewGodClassConfigurationLoader().LoadFullConfig(configTarget(configPath, args))
}
