package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"whlgen/internal/app"
)

type inspectOptions struct {
	Wheel   string
	EnvFile string
	Env     []string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show a wheel's identity, extras, and requirement groups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Wheel, "whl", "", "The .whl file to inspect")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", "", "YAML file with marker environment overrides")
	cmd.Flags().StringSliceVar(&opts.Env, "env", nil, "Marker environment overrides as key=value")
	_ = viper.BindPFlag("whl", cmd.Flags().Lookup("whl"))
	_ = viper.BindPFlag("env_file", cmd.Flags().Lookup("env-file"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	overrides, err := parseEnvOverrides(opts.Env)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		WheelPath:    resolveString(cmd, opts.Wheel, "whl", "whl"),
		EnvFile:      resolveString(cmd, opts.EnvFile, "env_file", "env-file"),
		EnvOverrides: overrides,
	})
	if err != nil {
		return err
	}

	fmt.Printf("name: %s\n", result.Name)
	fmt.Printf("distribution: %s\n", result.Distribution)
	fmt.Printf("version: %s\n", result.Version)
	fmt.Printf("repository: %s\n", result.RepositoryKey)
	fmt.Printf("extras: %s\n", strings.Join(result.Extras, ", "))
	fmt.Println("requirement groups:")
	for _, group := range result.Groups {
		condition := "always"
		if group.Extra != "" {
			condition = "extra=" + group.Extra
		}
		if group.Marker != "" {
			condition += " when " + group.Marker
		}
		fmt.Printf("- %s: %s\n", condition, strings.Join(group.Requires, ", "))
	}
	return nil
}
