package bofa_deposit

import (
	"regexp"

	"github.com/aqlanhadi/depsum/extractor/common"
	"github.com/spf13/viper"
)

// StatementType is the key of this format under "statement" in the config.
const StatementType = "BOFA_DEPOSIT"

const (
	DefaultFilePattern        = `(?i)\.pdf$`
	DefaultPagePattern        = `Page[\s\p{Zs}]+(\d+)[\s\p{Zs}]+of[\s\p{Zs}]+\d+`
	DefaultDepositPattern     = `(?i)(?:BANK OF AMERICA|BOFA MERCH SVCS)[\s\p{Zs}]+DES:DEPOSIT`
	DefaultAmountPattern      = `(-?[0-9]{1,3}(?:,[0-9]{3})*\.\d{2})$`
	DefaultConfirmationPrefix = "ID:"
	DefaultConfirmationMarker = "CCD"
)

// Config holds the compiled patterns. It is built once and never mutated.
type Config struct {
	FileName           *regexp.Regexp
	Page               *regexp.Regexp
	Deposit            *regexp.Regexp
	Amount             *regexp.Regexp
	ConfirmationPrefix string
	ConfirmationMarker string
}

func DefaultConfig() Config {
	return Config{
		FileName:           regexp.MustCompile(DefaultFilePattern),
		Page:               regexp.MustCompile(DefaultPagePattern),
		Deposit:            regexp.MustCompile(DefaultDepositPattern),
		Amount:             regexp.MustCompile(DefaultAmountPattern),
		ConfirmationPrefix: DefaultConfirmationPrefix,
		ConfirmationMarker: DefaultConfirmationMarker,
	}
}

// LoadConfig reads statement.BOFA_DEPOSIT from viper. Missing keys fall back
// to the defaults; a pattern that does not compile is a *common.ConfigError.
func LoadConfig() (Config, error) {
	var cfg Config
	var err error

	if cfg.FileName, err = compile("file_regex_pattern", DefaultFilePattern); err != nil {
		return Config{}, err
	}
	if cfg.Page, err = compile("patterns.page", DefaultPagePattern); err != nil {
		return Config{}, err
	}
	if cfg.Deposit, err = compile("patterns.deposit", DefaultDepositPattern); err != nil {
		return Config{}, err
	}
	if cfg.Amount, err = compile("patterns.amount", DefaultAmountPattern); err != nil {
		return Config{}, err
	}

	cfg.ConfirmationPrefix = stringOr("patterns.confirmation_prefix", DefaultConfirmationPrefix)
	cfg.ConfirmationMarker = stringOr("patterns.confirmation_marker", DefaultConfirmationMarker)

	return cfg, nil
}

func configKey(name string) string {
	return "statement." + StatementType + "." + name
}

func stringOr(name, fallback string) string {
	if v := viper.GetString(configKey(name)); v != "" {
		return v
	}
	return fallback
}

func compile(name, fallback string) (*regexp.Regexp, error) {
	pattern := stringOr(name, fallback)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &common.ConfigError{Key: configKey(name), Value: pattern, Err: err}
	}
	return re, nil
}
