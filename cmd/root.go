package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aqlanhadi/depsum/extractor"
	"github.com/aqlanhadi/depsum/extractor/bofa_deposit"
	"github.com/aqlanhadi/depsum/extractor/common"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Embedded default configuration, overridden by .depsum.yaml when present
const defaultConfigYAML = `
log:
  level: info
  format: text
server:
  port: "5001"
  max_upload_memory: 33554432
extractor:
  backend: dslipak
  unipdf_license_key: ""
statement:
  BOFA_DEPOSIT:
    file_regex_pattern: (?i)\.pdf$
    patterns:
      page: Page[\s\p{Zs}]+(\d+)[\s\p{Zs}]+of[\s\p{Zs}]+\d+
      deposit: (?i)(?:BANK OF AMERICA|BOFA MERCH SVCS)[\s\p{Zs}]+DES:DEPOSIT
      amount: (-?[0-9]{1,3}(?:,[0-9]{3})*\.\d{2})$
      confirmation_prefix: "ID:"
      confirmation_marker: CCD
`

var (
	cfgFile string
	verbose bool
	logger  = logrus.New()
	rootCmd = &cobra.Command{
		Use:   "depsum [filename]",
		Short: "Summarize BoA DES:DEPOSIT lines in PDF statements",
		Long: `depsum scans Bank of America statement PDFs for confirmed
DES:DEPOSIT lines and reports the total of positive and negative amounts.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				viper.Set("target", args[0])
				return runScan(cmd, nil)
			}
			return cmd.Help()
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.depsum.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	if err := loadConfig(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the embedded defaults and merges the user's config file on
// top of them. Environment variables such as DEPSUM_SERVER_PORT win over both.
func loadConfig(path string) error {
	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
		return fmt.Errorf("embedded configuration: %w", err)
	}

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".depsum")
	}

	viper.SetEnvPrefix("DEPSUM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func initLogging() {
	configureLogger(logger, viper.GetString("log.level"), viper.GetString("log.format"), verbose)
}

// configureLogger applies level and format to l. verbose forces debug.
func configureLogger(l *logrus.Logger, level, format string, verbose bool) {
	l.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		l.Warnf("Invalid log level '%s', using 'info'", level)
		lvl = logrus.InfoLevel
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	l.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func newTextExtractor() (common.TextExtractor, error) {
	return common.NewTextExtractor(common.ExtractorConfig{
		Backend:          viper.GetString("extractor.backend"),
		UnipdfLicenseKey: viper.GetString("extractor.unipdf_license_key"),
		Logger:           logger.WithField("component", "extractor"),
	})
}

// newProcessor wires the configured extractor backend and scanner patterns.
func newProcessor() (*extractor.Processor, error) {
	ext, err := newTextExtractor()
	if err != nil {
		return nil, err
	}

	cfg, err := bofa_deposit.LoadConfig()
	if err != nil {
		return nil, err
	}

	return extractor.NewProcessor(ext, bofa_deposit.NewScanner(cfg), logger), nil
}
