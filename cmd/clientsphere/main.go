// Command clientsphere imports client data and runs segment analytics over
// it. Results are printed as JSON on stdout; logs go to stderr.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PrettyR/ClientSphere/pkg/analytics"
	"github.com/PrettyR/ClientSphere/pkg/config"
	"github.com/PrettyR/ClientSphere/pkg/logging"
)

var (
	// Global flags
	cfgPath string
	verbose bool
	role    string

	cfg    *config.Config
	logger *zap.Logger
)

// errForbidden is returned when an admin command runs without the admin role.
var errForbidden = errors.New("this command requires --role admin")

var rootCmd = &cobra.Command{
	Use:           "clientsphere",
	Short:         "Client segmentation analytics",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger.Debug("config loaded", zap.String("path", cfgPath), zap.String("db", cfg.Store.DatabasePath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "clientsphere.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&role, "role", "", "caller role; admin unlocks clear and assign")

	rootCmd.AddCommand(
		importCmd, exportCmd, clientsCmd, clearCmd, assignCmd, activityCmd,
		overviewCmd, summaryCmd, distributionCmd, aggregateCmd, histogramCmd, boxplotCmd, scatterCmd,
		correlationCmd, anovaCmd, importanceCmd, chartsCmd,
		kmeansCmd, dbscanCmd, silhouetteCmd, recommendCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps usage and permission errors to 2 and everything else to 1.
func exitCode(err error) int {
	if analytics.IsUsage(err) || errors.Is(err, errForbidden) {
		return 2
	}
	return 1
}
