// Command p2pdb is the operator tool for the order store: it bootstraps the
// schema, seeds reference data and prints orders.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Wallian169/p2p-tg-bot/internal/config"
	"github.com/Wallian169/p2p-tg-bot/internal/lib/utils"
	"github.com/Wallian169/p2p-tg-bot/internal/logger"
	"github.com/Wallian169/p2p-tg-bot/internal/seed"
	"github.com/Wallian169/p2p-tg-bot/internal/server"
	"github.com/Wallian169/p2p-tg-bot/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli{}
	err := newRootCmd(app).ExecuteContext(ctx)
	if serr := app.stop(context.Background()); serr != nil {
		app.log.Error().Err(serr).Msg("shutdown failed")
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(app *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "p2pdb",
		Short:         "Manage the p2p order store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.start(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "Create missing tables, indexes and constraints",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.fail(app.server.DB.Migrate(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the default currencies and payment methods",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := seed.Run(cmd.Context(), app.server.DB, app.server.Logger)
				return app.fail(err)
			},
		},
		newOrderCmd(app),
	)

	return root
}

func newOrderCmd(app *cli) *cobra.Command {
	order := &cobra.Command{
		Use:   "order",
		Short: "Inspect orders",
	}

	order.AddCommand(
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print one order with its owner, currency and payment methods",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return app.fail(err)
				}

				o, err := app.services.Orders.Get(cmd.Context(), id)
				if err != nil {
					return app.fail(err)
				}
				return utils.PrintJSON(cmd.OutOrStdout(), o)
			},
		},
		&cobra.Command{
			Use:   "list <owner-id>",
			Short: "Print every order of one user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ownerID, err := parseID(args[0])
				if err != nil {
					return app.fail(err)
				}

				orders, err := app.services.Orders.ListByOwner(cmd.Context(), ownerID)
				if err != nil {
					return app.fail(err)
				}
				return utils.PrintJSON(cmd.OutOrStdout(), orders)
			},
		},
	)

	return order
}

// cli holds what every subcommand needs once the root pre-run has
// connected.
type cli struct {
	log      zerolog.Logger
	server   *server.Server
	services *service.Services
}

func (c *cli) start(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to start New Relic:", err)
		return err
	}

	c.log = logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(ctx, cfg, &c.log, loggerService)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to initialize server")
		loggerService.Shutdown()
		return err
	}

	c.server = srv
	c.services = service.NewServices(srv)
	return nil
}

func (c *cli) stop(ctx context.Context) error {
	if c.server == nil {
		return nil
	}
	return c.server.Shutdown(ctx)
}

// fail logs err before handing it back to cobra.
func (c *cli) fail(err error) error {
	if err != nil {
		c.log.Error().Err(err).Msg("command failed")
	}
	return err
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}
