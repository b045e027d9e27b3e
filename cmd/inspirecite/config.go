package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fkguo/inspirecite/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  inspirecite config                        # Show all config
  inspirecite config journal-table          # Get specific value
  inspirecite config journal-table abbr.yaml
  inspirecite config year-min 1900
  inspirecite config fuzzy true

Keys:
  api-base-url   Bibliographic service base URL override
  journal-table  Path to a yaml journal abbreviation table
  year-min       Lower bound of the publication-year range
  year-max       Upper bound of the publication-year range
  fuzzy          Enable fuzzy recognition by default (true/false)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	dir := config.Dir()
	cfg, err := config.Load(dir)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config.
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("api-base-url:  %s\n", cfg.APIBaseURL)
			fmt.Printf("journal-table: %s\n", cfg.JournalTable)
			fmt.Printf("year-min:      %d\n", cfg.YearMin)
			fmt.Printf("year-max:      %d\n", cfg.YearMax)
			fmt.Printf("fuzzy:         %t\n", cfg.FuzzyDefault)
			return nil
		}
		return outputJSON(cfg)
	}

	key := args[0]

	// One arg: get specific value.
	if len(args) == 1 {
		switch key {
		case "api-base-url":
			printValue("api_base_url", cfg.APIBaseURL)
		case "journal-table":
			printValue("journal_table", cfg.JournalTable)
		case "year-min":
			printValue("year_min", strconv.Itoa(cfg.YearMin))
		case "year-max":
			printValue("year_max", strconv.Itoa(cfg.YearMax))
		case "fuzzy":
			printValue("fuzzy", strconv.FormatBool(cfg.FuzzyDefault))
		default:
			exitWithError(ExitError, "unknown config key: %s", key)
		}
		return nil
	}

	// Two args: set value.
	value := args[1]
	switch key {
	case "api-base-url":
		cfg.APIBaseURL = value
	case "journal-table":
		if err := config.ValidateJournalTable(value); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.JournalTable = value
	case "year-min", "year-max":
		n, err := strconv.Atoi(value)
		if err != nil {
			exitWithError(ExitError, "%s must be a year: %v", key, err)
		}
		min, max := cfg.YearMin, cfg.YearMax
		if key == "year-min" {
			min = n
		} else {
			max = n
		}
		if err := config.ValidateYearRange(min, max); err != nil && min != 0 && max != 0 {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.YearMin, cfg.YearMax = min, max
	case "fuzzy":
		b, err := strconv.ParseBool(value)
		if err != nil {
			exitWithError(ExitError, "fuzzy must be true or false")
		}
		cfg.FuzzyDefault = b
	default:
		exitWithError(ExitError, "unknown config key: %s", key)
	}

	if err := cfg.Save(dir); err != nil {
		exitWithError(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		outputHuman("%s = %s\n", key, value)
		return nil
	}
	return outputJSON(map[string]string{key: value})
}

func printValue(jsonKey, value string) {
	if humanOutput {
		fmt.Println(value)
		return
	}
	outputJSON(map[string]string{jsonKey: value})
}
