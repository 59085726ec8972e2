package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradeledger/config"
	"tradeledger/fifo"
	"tradeledger/journal"
	"tradeledger/logging"
	"tradeledger/metrics"
	"tradeledger/trade"
)

var processFlags struct {
	trades    string
	configVal string
	db        string
	account   string
	noGapFill bool
}

var cmdProcess = &cobra.Command{
	Use:   "process",
	Short: "Match a trade history into closed lots and store the results",
	RunE:  runProcess,
}

func init() {
	f := cmdProcess.Flags()
	f.StringVar(&processFlags.trades, "trades", "", "path to normalized trades CSV (required)")
	f.StringVar(&processFlags.configVal, "config", "", "path to config file (YAML or JSON)")
	f.StringVar(&processFlags.db, "db", "", "override journal db path")
	f.StringVar(&processFlags.account, "account", "", "account scope")
	f.BoolVar(&processFlags.noGapFill, "no-gap-fill", false, "skip zero rows for inactive days")
	_ = cmdProcess.MarkFlagRequired("trades")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logging.New(cfg.DevelopmentLog)
	defer log.Sync()

	trades, err := journal.ReadTrades(processFlags.trades)
	if err != nil {
		return fmt.Errorf("read trades: %w", err)
	}

	engine := fifo.New(log)
	lots := engine.Process(trades)

	calc, err := metrics.NewCalculator(cfg.Account, cfg.Timezone, log)
	if err != nil {
		return err
	}
	series := calc.DailySeries(lots, cfg.FillGaps)
	agg := calc.Aggregates(lots, series)
	extended := calc.Extended(lots, series)

	if err := persist(cfg, lots, series, agg); err != nil {
		return err
	}

	log.Info("pipeline complete",
		zap.Int("trades", len(trades)),
		zap.Int("lots", len(lots)),
		zap.Int("days", len(series)))

	printAggregate(agg)
	printExtended(extended)
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if processFlags.configVal != "" {
		loaded, err := config.LoadFromFile(processFlags.configVal)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if processFlags.db != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = processFlags.db
	}
	if processFlags.account != "" {
		cfg.Account = processFlags.account
	}
	if processFlags.noGapFill {
		cfg.FillGaps = false
	}
	return cfg, nil
}

func persist(cfg *config.Config, lots []trade.ClosedLot, series []trade.DayPnL, agg trade.Aggregate) error {
	var rec journal.Recorder

	switch cfg.Journal.Type {
	case "sqlite":
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		// Full-history recompute replaces prior rows for the scope.
		if err := j.Reset(cfg.Account); err != nil {
			return err
		}
		rec = j
	case "csv":
		j, err := journal.NewCSV(cfg.Journal.LotsFile, cfg.Journal.DailyFile)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		rec = j
	default:
		return fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
	}
	if err := record(rec, lots, series, agg); err != nil {
		rec.Close()
		return err
	}
	return rec.Close()
}

func record(rec journal.Recorder, lots []trade.ClosedLot, series []trade.DayPnL, agg trade.Aggregate) error {
	for _, lot := range lots {
		if err := rec.RecordLot(lot); err != nil {
			return fmt.Errorf("record lot: %w", err)
		}
	}
	for _, day := range series {
		if err := rec.RecordDay(day); err != nil {
			return fmt.Errorf("record day: %w", err)
		}
	}
	if err := rec.RecordAggregate(agg); err != nil {
		return fmt.Errorf("record aggregate: %w", err)
	}
	return nil
}
