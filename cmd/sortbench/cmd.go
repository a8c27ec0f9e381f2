package main

import (
	"fmt"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rlaau/pmsort/internal/bench"
	"github.com/rlaau/pmsort/internal/config"
	"github.com/rlaau/pmsort/internal/datastore"
	"github.com/rlaau/pmsort/internal/logutil"
	"github.com/rlaau/pmsort/msort"
)

type options struct {
	configPath string
	backend    string
	path       string
	cutoff     int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "sortbench",
		Short:         "병렬 머지소트 벤치마크",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "store backend (bbolt, badger, pebble)")
	root.PersistentFlags().StringVar(&opts.path, "store", "", "store path")
	root.PersistentFlags().IntVar(&opts.cutoff, "cutoff", -1, "parallel cutoff depth, negative keeps config value")

	root.AddCommand(newGenCmd(opts), newRunCmd(opts), newReportCmd(opts))
	return root
}

// load 설정 파일을 읽고 플래그로 덮어쓴 뒤 로거를 설정한다
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.backend != "" {
		cfg.Store.Backend = o.backend
	}
	if o.path != "" {
		cfg.Store.Path = o.path
	}
	if o.cutoff >= 0 {
		cfg.Sort.Cutoff = o.cutoff
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logutil.SetupLogger(&cfg.Log)
	return cfg, nil
}

func openStore(cfg *config.Config) (datastore.Store, error) {
	store, err := datastore.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	logutil.Info("store opened", zap.String("backend", cfg.Store.Backend), zap.String("path", cfg.Store.Path))
	return store, nil
}

func closeStore(store datastore.Store) {
	if err := store.Close(); err != nil {
		logutil.Warn("store close failed", zap.Error(err))
	}
}

func newRunner(cfg *config.Config, store datastore.Store) *bench.Runner {
	return &bench.Runner{
		Store:      store,
		Sorter:     msort.New(append(cfg.SorterOptions(), msort.WithLogger(logutil.GetGlobalLogger()))...),
		Sizes:      cfg.Bench.Sizes,
		Runs:       cfg.Bench.Runs,
		Seed:       cfg.Bench.Seed,
		Algorithms: cfg.Bench.Algorithms,
	}
}

func newGenCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "데이터셋 생성 후 저장",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			datasets, err := newRunner(cfg, store).Prepare(cmd.Context())
			if err != nil {
				return err
			}
			for _, size := range cfg.Bench.Sizes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d개\n", bench.DatasetName(size), len(datasets[size]))
			}
			return nil
		},
	}
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "벤치마크 실행 후 결과 저장",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			runner := newRunner(cfg, store)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "정렬 알고리즘 벤치마크 시작...")
			fmt.Fprintf(out, "CPU 코어 수: %d\n", runtime.NumCPU())
			fmt.Fprintf(out, "GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
			fmt.Fprintf(out, "컷오프: %d\n\n", runner.Sorter.Cutoff())

			results, err := runner.Run(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "benchmark")
			}
			for _, r := range results {
				fmt.Fprintf(out, "  %s %s - 테스트 %d: %v\n", r.Algorithm, r.Dataset, r.TestRun, r.Duration)
			}
			fmt.Fprintln(out, "벤치마크 완료!")
			return nil
		},
	}
}

func newReportCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "저장된 결과 출력",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			results, err := store.ListResults()
			if err != nil {
				return err
			}
			switch format {
			case "md", "markdown":
				return bench.WriteMarkdown(cmd.OutOrStdout(), results)
			case "json":
				return bench.WriteJSON(cmd.OutOrStdout(), results)
			default:
				return errors.Newf("unknown report format %q", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "md or json")
	return cmd
}
