package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/meanrev/backtest"
	"github.com/rustyeddy/meanrev/config"
	"github.com/rustyeddy/meanrev/journal"
	"github.com/rustyeddy/meanrev/market"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run the mean-reversion backtest over a price series",
	Long: `Backtest simulates the oscillator strategy over a historical series.

The series is a CSV of "time,close" rows (RFC3339 or unix-second
timestamps); files ending in .xz are decompressed transparently.

Example:
  meanrev backtest --data prices.csv --window 14 --journal sqlite --db run.sqlite`,
	RunE: runBacktest,
}

var (
	btDataPath    string
	btConfigPath  string
	btWindow      int
	btOversold    float64
	btOverbought  float64
	btStopSigmas  float64
	btTakeSigmas  float64
	btTrailing    float64
	btCapital     float64
	btJournalType string
	btTradesFile  string
	btCapitalFile string
	btDBPath      string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	defaults := config.Default()

	backtestCmd.Flags().StringVarP(&btDataPath, "data", "d", "", "path to price CSV (time,close) (required)")
	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to config file (flags override it)")

	backtestCmd.Flags().IntVarP(&btWindow, "window", "w", defaults.Strategy.Window, "oscillator window (bars)")
	backtestCmd.Flags().Float64Var(&btOversold, "oversold", defaults.Strategy.Oversold, "entry threshold (oscillator below)")
	backtestCmd.Flags().Float64Var(&btOverbought, "overbought", defaults.Strategy.Overbought, "exit threshold (oscillator above)")
	backtestCmd.Flags().Float64Var(&btStopSigmas, "stop-sigmas", defaults.Strategy.StopSigmas, "initial stop distance in sigmas")
	backtestCmd.Flags().Float64Var(&btTakeSigmas, "take-sigmas", defaults.Strategy.TakeSigmas, "take-profit distance in sigmas")
	backtestCmd.Flags().Float64Var(&btTrailing, "trailing", defaults.Strategy.TrailingStop, "trailing stop distance (fraction)")
	backtestCmd.Flags().Float64Var(&btCapital, "capital", defaults.Simulation.InitialCapital, "initial capital")

	backtestCmd.Flags().StringVarP(&btJournalType, "journal", "j", "none", "journal type (none, csv, sqlite)")
	backtestCmd.Flags().StringVar(&btTradesFile, "trades-file", defaults.Journal.TradesFile, "csv journal: trades file")
	backtestCmd.Flags().StringVar(&btCapitalFile, "capital-file", defaults.Journal.CapitalFile, "csv journal: capital file")
	backtestCmd.Flags().StringVar(&btDBPath, "db", "./backtest.sqlite", "sqlite journal: database path")

	backtestCmd.MarkFlagRequired("data")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if btConfigPath != "" {
		loaded, err := config.LoadFromFile(btConfigPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		cfg = loaded
	}
	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	series, err := market.Load(btDataPath)
	if err != nil {
		return fmt.Errorf("load series: %w", err)
	}

	j, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	runner := &backtest.Runner{
		Series:         series,
		Window:         cfg.Strategy.Window,
		InitialCapital: cfg.Simulation.InitialCapital,
		Sim:            cfg.SimConfig(),
		Journal:        j,
	}

	res, err := runner.Run()
	if err != nil {
		return err
	}

	backtest.PrintResult(os.Stdout, res)
	return nil
}

// applyFlags overlays explicitly-set flags on top of the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("window") {
		cfg.Strategy.Window = btWindow
	}
	if cmd.Flags().Changed("oversold") {
		cfg.Strategy.Oversold = btOversold
	}
	if cmd.Flags().Changed("overbought") {
		cfg.Strategy.Overbought = btOverbought
	}
	if cmd.Flags().Changed("stop-sigmas") {
		cfg.Strategy.StopSigmas = btStopSigmas
	}
	if cmd.Flags().Changed("take-sigmas") {
		cfg.Strategy.TakeSigmas = btTakeSigmas
	}
	if cmd.Flags().Changed("trailing") {
		cfg.Strategy.TrailingStop = btTrailing
	}
	if cmd.Flags().Changed("capital") {
		cfg.Simulation.InitialCapital = btCapital
	}
	if cmd.Flags().Changed("journal") {
		cfg.Journal.Type = btJournalType
	}
	if cmd.Flags().Changed("trades-file") {
		cfg.Journal.TradesFile = btTradesFile
	}
	if cmd.Flags().Changed("capital-file") {
		cfg.Journal.CapitalFile = btCapitalFile
	}
	if cmd.Flags().Changed("db") {
		cfg.Journal.DBPath = btDBPath
	}
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "none", "":
		return nil, nil
	case "csv":
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.CapitalFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}
}
