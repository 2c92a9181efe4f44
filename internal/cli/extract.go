package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"whlgen/internal/app"
)

type extractOptions struct {
	Wheel        string
	Directory    string
	Requirements string
	Extras       []string
	EnvFile      string
	Env          []string
}

func newExtractCommand() *cobra.Command {
	opts := extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Expand a wheel and generate its build declarations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExtract(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Wheel, "whl", "", "The .whl file to expand")
	cmd.Flags().StringVar(&opts.Directory, "directory", ".", "The directory to expand into")
	cmd.Flags().StringVar(&opts.Requirements, "requirements", "", "Label of the requirements file to draw dependencies from")
	cmd.Flags().StringSliceVar(&opts.Extras, "extra", nil, "Extras to generate library targets for")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", "", "YAML file with marker environment overrides")
	cmd.Flags().StringSliceVar(&opts.Env, "env", nil, "Marker environment overrides as key=value")
	_ = viper.BindPFlag("whl", cmd.Flags().Lookup("whl"))
	_ = viper.BindPFlag("directory", cmd.Flags().Lookup("directory"))
	_ = viper.BindPFlag("requirements", cmd.Flags().Lookup("requirements"))
	_ = viper.BindPFlag("extras", cmd.Flags().Lookup("extra"))
	_ = viper.BindPFlag("env_file", cmd.Flags().Lookup("env-file"))
	return cmd
}

func runExtract(ctx context.Context, cmd *cobra.Command, opts extractOptions) error {
	overrides, err := parseEnvOverrides(opts.Env)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Extract(ctx, app.ExtractRequest{
		WheelPath:         resolveString(cmd, opts.Wheel, "whl", "whl"),
		Directory:         resolveString(cmd, opts.Directory, "directory", "directory"),
		RequirementsLabel: resolveString(cmd, opts.Requirements, "requirements", "requirements"),
		Extras:            resolveStrings(cmd, opts.Extras, "extras", "extra"),
		EnvFile:           resolveString(cmd, opts.EnvFile, "env_file", "env-file"),
		EnvOverrides:      overrides,
	})
	if err != nil {
		return err
	}

	fmt.Printf("expanded %s into %s\n", result.RepositoryKey, result.Directory)
	fmt.Printf("manifest entries: %d\n", result.FileCount)
	fmt.Printf("targets: %s\n", strings.Join(result.Targets, ", "))
	return nil
}

func parseEnvOverrides(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("environment override must be key=value: " + pair)
		}
		overrides[strings.TrimSpace(key)] = value
	}
	return overrides, nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}
