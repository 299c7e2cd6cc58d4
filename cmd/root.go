// =============================================================================
// Yard Ledger - Root Command
// =============================================================================
//
// Defines the root command all subcommands attach to and the shared
// bootstrap: configuration loading, the structured logger, and constructors
// for the store, the occupancy view and the reconciliation engine.
//
// COMMAND TREE:
//   yardledger
//   ├── entry     (log a container entering the yard)
//   ├── exit      (reconcile and log a container leaving)
//   ├── yard      (show current occupancy)
//   ├── open      (open today's partition or the ledger folder)
//   └── version
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/m4log/yard-ledger/internal/config"
	"github.com/m4log/yard-ledger/internal/ledger"
	"github.com/m4log/yard-ledger/internal/waybill"
	"github.com/m4log/yard-ledger/internal/yard"
	"github.com/m4log/yard-ledger/pkg/logger"
)

// cfgFile is the path to the configuration file, overridable via --config.
var cfgFile string

// verbose raises the log level to debug regardless of configuration.
var verbose bool

// cfg and log are initialized by initBootstrap before any RunE executes.
var (
	cfg *config.Config
	log *logger.Logger
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "yardledger",
	Short: "Yard Ledger - container movement tracking over daily spreadsheet partitions",
	Long: `Yard Ledger tracks container movements (entries and exits) through a
container yard. Every movement is one row in a daily, append-only spreadsheet
partition; the current yard occupancy is derived on demand from the union of
all partitions.

Typical workflow:
  yardledger entry --container MSKU3000000 --plate ABC1D23 ...   # gate in
  yardledger yard                                                # who is here?
  yardledger exit --container MSKU3000000 --tare 2250 ...        # gate out + waybill
  yardledger open                                                # today's spreadsheet`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBootstrap)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// initBootstrap loads the configuration and builds the logger. Runs before
// any subcommand's RunE.
func initBootstrap() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Timestamps, partition dates and entry-time parsing all run in the
	// configured zone; resetting time.Local applies it process-wide.
	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	time.Local = loc

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log = logger.New(logger.Config{Level: level, Format: cfg.LogFormat})
}

// newStore builds the partition store on the real wall clock.
func newStore() *ledger.Store {
	return ledger.NewStore(cfg.LedgerDir, nil, log)
}

// newView builds the occupancy view.
func newView(store *ledger.Store) *yard.View {
	return yard.NewView(store, log)
}

// newEngine builds the reconciliation engine with the PDF waybill emitter.
func newEngine(store *ledger.Store) *yard.Engine {
	return yard.NewEngine(store, waybill.NewGenerator(cfg.WaybillDir), log)
}
