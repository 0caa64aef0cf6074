package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kezhuw/hgmanifest/internal/errors"
)

type logConfig struct {
	level  string
	format string
}

func (c *logConfig) build() (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.level)); err != nil {
		return nil, errors.Wrapf(err, "log level %q", c.level)
	}
	var config zap.Config
	if c.format == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}

type cli struct {
	logs   logConfig
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:           "hgmanifest",
		Short:         "Inspect flat manifests and manifest stores",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := c.logs.build()
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&c.logs.level, "log-level", "warn", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&c.logs.format, "log-format", "console", "log format: console or json")

	root.AddCommand(
		c.parseCmd(),
		c.verifyCmd(),
		c.putCmd(),
		c.lsCmd(),
	)
	return root
}
