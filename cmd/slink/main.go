// Command slink clusters a set of points with the SLINK algorithm and
// emits the resulting dendrogram in the labelled and Mathematica
// textual forms.
package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aharden/slink/internal/bench"
	"github.com/aharden/slink/internal/config"
	"github.com/aharden/slink/internal/dendrogram"
	"github.com/aharden/slink/internal/emit"
	"github.com/aharden/slink/internal/history"
	"github.com/aharden/slink/internal/metric"
	"github.com/aharden/slink/internal/points"
	"github.com/aharden/slink/internal/server"
	"github.com/aharden/slink/internal/slink"
	"github.com/aharden/slink/internal/slinkerr"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process exit status SPEC_FULL.md
// section 4.L defines: 0 success, 1 InvalidInput, 2 IoError.
func exitCode(err error) int {
	if slinkerr.Is(err, slinkerr.IoError) {
		return 2
	}
	return 1
}

var rootCmd = &cobra.Command{
	Use:     "slink",
	Short:   "Single-linkage hierarchical clustering",
	Long:    "slink clusters a set of points with Sibson's SLINK algorithm and emits the dendrogram as a labelled listing or a Mathematica Cluster[] expression.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			if cmd.Name() == "cluster" && len(args) >= 1 {
				// A bare `slink cluster <file>` invocation works without a
				// config file: fall back to all-default settings.
				cfg = config.Default()
				return nil
			}
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("slink", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/slink/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to set the dataset path, metric, and output locations.")
		return nil
	},
}

// --- cluster command ---

var clusterCmd = &cobra.Command{
	Use:   "cluster [input.csv] [labelled-out] [mathematica-out]",
	Short: "Cluster a CSV point set and emit both dendrogram forms",
	Args:  cobra.MaximumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := cfg.Dataset.Path
		if len(args) >= 1 {
			inputPath = args[0]
		}
		labelledPath := cfg.Output.LabelledPath
		if len(args) >= 2 {
			labelledPath = args[1]
		}
		mathematicaPath := cfg.Output.MathematicaPath
		if len(args) >= 3 {
			mathematicaPath = args[2]
		}

		m, ok := metric.Named(cfg.Dataset.Metric)
		if !ok {
			return fmt.Errorf("unknown metric %q", cfg.Dataset.Metric)
		}

		report := bench.NewReport(0, time.Now())

		ingestStart := time.Now()
		set, err := points.LoadCSV(inputPath)
		if err != nil {
			return fmt.Errorf("loading points: %w", err)
		}
		report.N = set.Len()
		report.Record(bench.StageIngest, time.Since(ingestStart))

		var observer bench.Observer = bench.NoopObserver{}
		if verbose {
			observer = &bench.ProgressObserver{W: os.Stdout, Total: set.Len(), Stride: 1000}
		}

		clusterStart := time.Now()
		result, err := slink.Cluster(set, m, slink.WithObserver(observer))
		if err != nil {
			return fmt.Errorf("clustering: %w", err)
		}
		report.Record(bench.StageCluster, time.Since(clusterStart))

		emitStart := time.Now()
		merges, err := dendrogram.Build(set, result, cfg.Labels.StartRune())
		if err != nil {
			return fmt.Errorf("building dendrogram: %w", err)
		}

		labelledFile, err := os.Create(labelledPath)
		if err != nil {
			return slinkerr.Wrap(slinkerr.IoError, "creating labelled output "+labelledPath, err)
		}
		defer labelledFile.Close()
		if err := emit.Labelled(labelledFile, set, merges, cfg.Labels.StartRune()); err != nil {
			return slinkerr.Wrap(slinkerr.IoError, "writing labelled output "+labelledPath, err)
		}

		mathematicaFile, err := os.Create(mathematicaPath)
		if err != nil {
			return slinkerr.Wrap(slinkerr.IoError, "creating mathematica output "+mathematicaPath, err)
		}
		defer mathematicaFile.Close()
		if err := emit.Mathematica(mathematicaFile, merges); err != nil {
			return slinkerr.Wrap(slinkerr.IoError, "writing mathematica output "+mathematicaPath, err)
		}
		report.Record(bench.StageEmit, time.Since(emitStart))

		rootHeight := rootHeightOf(result)
		if store, err := openHistory(); err == nil {
			defer store.Close()
			if _, err := store.RecordRun(inputPath, set.Len(), set.Dim(), cfg.Dataset.Metric, report, rootHeight); err != nil {
				log.Printf("recording run history: %v", err)
			}
		} else {
			log.Printf("opening history store: %v", err)
		}

		fmt.Printf("Clustered %d points in %s\n", set.Len(), report.Total())
		fmt.Printf("Labelled form: %s\n", labelledPath)
		fmt.Printf("Mathematica form: %s\n", mathematicaPath)
		return nil
	},
}

// rootHeightOf returns the largest finite λ value, the height of the
// final real merge (the one that forms the root cluster), or 0 when
// there is no finite λ (a single point).
func rootHeightOf(res slink.Result) float64 {
	height := 0.0
	for _, h := range res.Lambda {
		if !math.IsInf(h, 1) && h > height {
			height = h
		}
	}
	return height
}

// --- history command ---

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded clustering runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(historyLimit)
		if err != nil {
			return fmt.Errorf("listing runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		for _, r := range runs {
			fmt.Printf("%s  n=%d dim=%d metric=%s root=%.4f  %s\n",
				r.ID, r.N, r.Dim, r.Metric, r.RootHeight, r.CreatedAt)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server for browsing run history",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		port := cfg.Server.Port
		if servePort != 0 {
			port = servePort
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(store, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (overrides config)")
}

func openHistory() (*history.Store, error) {
	return history.Open(cfg.GetHistoryPath())
}
