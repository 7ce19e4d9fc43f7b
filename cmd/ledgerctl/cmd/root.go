// Package cmd ledgerctl 命令行子命令
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xxz807/finscale/reports/internal/ledger/adapter/repo"
	"github.com/xxz807/finscale/reports/internal/ledger/domain"
	"github.com/xxz807/finscale/reports/internal/ledger/service"
	"github.com/xxz807/finscale/reports/internal/platform/cache"
	"github.com/xxz807/finscale/reports/internal/platform/config"
	"github.com/xxz807/finscale/reports/internal/platform/database"
	"github.com/xxz807/finscale/reports/internal/platform/logger"
)

const dateLayout = "2006-01-02"

var (
	cfgFile string
	debug   bool
	start   string
	end     string
	branch  int64

	// reports 在 PersistentPreRunE 中按配置初始化
	reports *service.ReportService
)

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Print trial balance and account ledger reports",
	Long: `ledgerctl reads journal postings from the FinScale database and prints
reports to the terminal.

Example:
  ledgerctl trial-balance --start 2023-02-01 --end 2023-02-28
  ledgerctl ledger --account 12 --start 2023-02-01 --end 2023-02-28 --branch 3`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		mode := "release"
		if debug {
			mode = "debug"
		}
		log, err := logger.NewLogger(mode)
		if err != nil {
			return err
		}
		db, err := database.NewDB(cfg.Database, mode, log)
		if err != nil {
			return err
		}
		// 单次执行的命令行不需要缓存
		reports = service.NewReportService(
			repo.NewAccountRepo(db),
			repo.NewPostingRepo(db),
			cache.NoopCache{},
			service.Options{PageSize: cfg.Report.PageSize},
			log.Named("ledgerctl"),
		)
		return nil
	},
}

// Execute 执行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "configs/config.yaml", "config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&start, "start", "", "period start date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&end, "end", "", "period end date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Int64Var(&branch, "branch", 0, "branch id filter (0 = all branches)")

	rootCmd.AddCommand(trialBalanceCmd)
	rootCmd.AddCommand(ledgerCmd)
}

// buildRequest 在进入引擎之前校验日期参数
func buildRequest() (domain.Request, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return domain.Request{}, fmt.Errorf("invalid --start %q: %w", start, err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return domain.Request{}, fmt.Errorf("invalid --end %q: %w", end, err)
	}
	req := domain.Request{Start: s, End: e}
	if branch > 0 {
		b := branch
		req.BranchID = &b
	}
	if err := req.Validate(); err != nil {
		return domain.Request{}, fmt.Errorf("%w: --start must not be after --end", err)
	}
	return req, nil
}
