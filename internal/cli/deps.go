package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"whlgen/internal/app"
)

type depsOptions struct {
	Wheel   string
	Extra   string
	EnvFile string
	Env     []string
}

func newDepsCommand() *cobra.Command {
	opts := depsOptions{}
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "List the packages a wheel requires for an extra",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeps(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Wheel, "whl", "", "The .whl file to query")
	cmd.Flags().StringVar(&opts.Extra, "extra", "", "Extra to query; empty queries the base set")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", "", "YAML file with marker environment overrides")
	cmd.Flags().StringSliceVar(&opts.Env, "env", nil, "Marker environment overrides as key=value")
	_ = viper.BindPFlag("whl", cmd.Flags().Lookup("whl"))
	_ = viper.BindPFlag("env_file", cmd.Flags().Lookup("env-file"))
	return cmd
}

func runDeps(ctx context.Context, cmd *cobra.Command, opts depsOptions) error {
	overrides, err := parseEnvOverrides(opts.Env)
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Deps(ctx, app.DepsRequest{
		WheelPath:    resolveString(cmd, opts.Wheel, "whl", "whl"),
		Extra:        opts.Extra,
		EnvFile:      resolveString(cmd, opts.EnvFile, "env_file", "env-file"),
		EnvOverrides: overrides,
	})
	if err != nil {
		return err
	}
	for _, requirement := range result.Requirements {
		fmt.Println(requirement)
	}
	return nil
}
