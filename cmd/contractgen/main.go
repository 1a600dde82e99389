// Command contractgen collects licensor data for a music licence contract and
// sends it to the remote DOCX renderer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	contractgen "github.com/goliatone/go-contractgen"
	"github.com/goliatone/go-contractgen/internal/config"
	"github.com/goliatone/go-contractgen/internal/logging"
	"github.com/goliatone/go-contractgen/pkg/contract"
)

var (
	configPath string
	verbose    bool
	variant    string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "contractgen",
	Short: "Generate licence contracts through the remote DOCX renderer",
	Long: `contractgen fills the licensor form, checks it against the selected
variant and asks the renderer service to produce the contract.

Configuration is read from --config (YAML) and CONTRACTGEN_* environment
variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if variant != "" {
			if _, err := contract.ParseVariant(variant); err != nil {
				return err
			}
			loaded.Variant = variant
		}
		cfg = loaded

		logger, err = logging.New(cfg.Logging.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "contractgen.yaml", "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&variant, "variant", "", "Form variant: minimal, banking or full (default from config)")

	previewCmd.Flags().StringVar(&valuesPath, "values", "", "YAML or JSON file of field values (required)")
	previewCmd.Flags().StringVar(&coverPath, "cover", "", "Cover image file")
	previewCmd.Flags().BoolVar(&showPayload, "payload", false, "Print the renderer payload instead of the summary")
	_ = previewCmd.MarkFlagRequired("values")

	fillCmd.Flags().StringVar(&valuesPath, "values", "", "Prefill fields from a YAML or JSON file")
	fillCmd.Flags().IntVar(&maxRounds, "max-rounds", 3, "Attempts before giving up on invalid input")

	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from config)")

	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(nextNumberCmd)
	rootCmd.AddCommand(uploadTemplateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(checkPayloadCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newStack builds the clients from the loaded configuration.
func newStack() (*contractgen.Stack, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	return contractgen.New(
		contractgen.WithEndpoints(cfg.Endpoints.Render, cfg.Endpoints.Upload, cfg.Endpoints.NextNumber),
		contractgen.WithTimeout(timeout),
		contractgen.WithVariant(cfg.ContractVariant()),
		contractgen.WithLogger(logger),
	)
}
