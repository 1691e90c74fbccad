package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/verusns/internal/config"
	"github.com/mtlprog/verusns/internal/domain"
	"github.com/mtlprog/verusns/internal/logging"
	"github.com/mtlprog/verusns/internal/namespace"
	"github.com/mtlprog/verusns/internal/verusd"
)

const configKey = "config"

func newApp() *cli.App {
	return &cli.App{
		Name:  "verusns",
		Usage: "discover Verus currencies that accept identity registrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"VERUSNS_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "chain",
				Usage: "chain identifier (" + fmt.Sprint(domain.SupportedChains()) + ")",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.LoadFile(c.String("config"))
			if err != nil {
				return err
			}
			if c.IsSet("chain") {
				cfg.Chain = c.String("chain")
			}
			if c.IsSet("log-level") {
				cfg.LogLevel = c.String("log-level")
			}
			logCfg := logging.DefaultConfig()
			logCfg.Level = cfg.LogLevel
			logCfg.Output = c.App.ErrWriter
			if cfg.LogFormat != "" {
				logCfg.Format = cfg.LogFormat
			}
			logging.Setup(logCfg)
			c.App.Metadata[configKey] = cfg
			return nil
		},
		Commands: []*cli.Command{
			discoverCommand(),
			rootCommand(),
			currencyCommand(),
			exportCommand(),
			serveCommand(),
		},
	}
}

func configFrom(c *cli.Context) config.Config {
	cfg, ok := c.App.Metadata[configKey].(config.Config)
	if !ok {
		return config.Load()
	}
	return cfg
}

func newClient(cfg config.Config) *verusd.Client {
	cfg.RequireRPCCredentials()
	return verusd.NewClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword,
		verusd.WithTimeout(cfg.RPCTimeout),
		verusd.WithRetries(cfg.RPCRetryMax, cfg.RPCRetryBaseDelay),
	)
}

func newNamespaceService(cfg config.Config, client namespace.CatalogClient) *namespace.Service {
	return namespace.NewService(client,
		namespace.WithBatchSize(cfg.BatchSize),
		namespace.WithBatchPause(cfg.BatchPause),
		namespace.WithLogger(slog.Default().With("component", "namespace")),
	)
}

func discoverCommand() *cli.Command {
	return &cli.Command{
		Name:  "discover",
		Usage: "list the currencies that accept identity registrations",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"},
		},
		Action: func(c *cli.Context) error {
			cfg := configFrom(c)
			svc := newNamespaceService(cfg, newClient(cfg))

			options, err := svc.DiscoverNamespaces(c.Context)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(c.App.Writer, options)
			}
			printTable(c.App.Writer, options)
			return nil
		},
	}
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:      "root",
		Usage:     "show the native currency of a chain as a namespace",
		ArgsUsage: "[CHAIN]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"},
		},
		Action: func(c *cli.Context) error {
			cfg := configFrom(c)
			chain := cfg.Chain
			if c.Args().Present() {
				chain = c.Args().First()
			}

			svc := newNamespaceService(cfg, newClient(cfg))
			option, err := svc.ResolveRootCurrency(c.Context, chain)
			if err != nil {
				return err
			}
			if c.Bool("json") {
				return printJSON(c.App.Writer, option)
			}
			printTable(c.App.Writer, []domain.NamespaceOption{option})
			return nil
		},
	}
}

func currencyCommand() *cli.Command {
	return &cli.Command{
		Name:      "currency",
		Usage:     "show the raw definition and state of a currency",
		ArgsUsage: "NAME_OR_ID",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("currency: expected exactly one NAME_OR_ID argument", 2)
			}
			cfg := configFrom(c)
			svc := newNamespaceService(cfg, newClient(cfg))

			detail, err := svc.GetCurrencyDetail(c.Context, c.Args().First())
			if err != nil {
				return err
			}
			return printJSON(c.App.Writer, detail)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTable(w io.Writer, options []domain.NamespaceOption) {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "FEE", "FEE CURRENCY", "OPTIONS", "REFERRALS", "CURRENCY ID").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, o := range options {
		t.Row(
			o.FullyQualifiedName,
			o.RegistrationFee.String(),
			o.FeeCurrencyName,
			strconv.FormatUint(uint64(o.Options), 10),
			strconv.Itoa(o.IDReferralLevels),
			o.CurrencyID,
		)
	}

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d namespaces\n", len(options))
}
