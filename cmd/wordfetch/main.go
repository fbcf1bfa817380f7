// Package main is the wordfetch application entrypoint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wordfetch/internal"
	"wordfetch/internal/app/apps"
	"wordfetch/internal/app/cfg"
	"wordfetch/internal/pkg/log"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CLI command definitions.
var (
	logger logrus.FieldLogger = logrus.StandardLogger()

	rootCmd = &cobra.Command{
		Use:           "wordfetch",
		Short:         "Fetches a word list page by page over TCP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	clientCmd = &cobra.Command{
		Use:   "client",
		Short: "Downloads every word from a wordfetch server and prints word frequencies.",
		Args:  cobra.NoArgs,
		RunE:  runCmd,
	}

	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Starts a wordfetch server.",
		Args:  cobra.NoArgs,
		RunE:  runCmd,
	}

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Measures download times for a range of page sizes.",
		Args:  cobra.NoArgs,
		RunE:  runCmd,
	}
)

func newApp(_ context.Context, cmd *cobra.Command, args []string) (apps.App, error) {
	switch cmd.Name() {
	case "client":
		app, err := apps.NewClientApp(cfg.FromEnv())
		if err != nil {
			return nil, errors.Wrap(err, "new client app failed")
		}
		app.Out = cmd.OutOrStdout()
		return app, nil
	case "server":
		app, err := apps.NewServerApp(cfg.FromEnv())
		if err != nil {
			return nil, errors.Wrap(err, "new server app failed")
		}
		return app, nil
	case "bench":
		app, err := apps.NewBenchApp(cfg.FromEnv())
		if err != nil {
			return nil, errors.Wrap(err, "new bench app failed")
		}
		return app, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd.Name())
	}
}

func runCmd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := chainedCheck(
		ctx,
		envCheck,
	); err != nil {
		return errors.Wrap(err, "chained check failed")
	}
	app, err := newApp(ctx, cmd, args)
	if err != nil {
		return errors.Wrapf(err, "new %s app failed", cmd.Name())
	}
	return errors.Wrap(app.Run(ctx, args), "run app failed")
}

func envCheck(ctx context.Context) error {
	log.SetLogger(internal.LogLevel())
	err := internal.ValidateEnv()
	if err != nil {
		return errors.Wrap(err, "validate env failed")
	}
	// the config file may set the level too
	log.SetLogger(internal.LogLevel())
	return nil
}

func chainedCheck(ctx context.Context, checks ...func(context.Context) error) error {
	for _, check := range checks {
		err := check(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	err := internal.RegisterCommandFlags(rootCmd, []*internal.Flag{
		&internal.ConfigFlag,
		&internal.LogLevelFlag,

		&internal.ServerIPFlag,
		&internal.ServerPortFlag,
	})
	if err != nil {
		logger.Fatalln(err)
	}

	err = internal.RegisterCommandFlags(clientCmd, []*internal.Flag{
		&internal.PageSizeFlag,
		&internal.OffsetFlag,
		&internal.QuietFlag,
	})
	if err != nil {
		logger.Fatalln(err)
	}

	err = internal.RegisterCommandFlags(serverCmd, []*internal.Flag{
		&internal.FilenameFlag,
		&internal.MaxConnsFlag,
		&internal.HealthPortFlag,
	})
	if err != nil {
		logger.Fatalln(err)
	}

	err = internal.RegisterCommandFlags(benchCmd, []*internal.Flag{
		&internal.BenchPageSizesFlag,
		&internal.BenchRunsFlag,
		&internal.BenchOutFlag,
		&internal.BenchDBFlag,
	})
	if err != nil {
		logger.Fatalln(err)
	}

	rootCmd.AddCommand(
		clientCmd,
		serverCmd,
		benchCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Fatal(errors.Wrap(err, "execute root command failed"))
	}
}
