package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/jumpkit/jumplist"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	appidMap string
)

var rootCmd = &cobra.Command{
	Use:   "jumpctl",
	Short: "Inspect Windows jump list files",
	Long: `jumpctl decodes Windows jump list artifacts: automatic destinations
(compound containers with a DestList index) and custom destinations
(flat category streams). Decoded records include the embedded shell
links and can be flattened into uniform rows for reporting.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
		if appidMap != "" {
			if err := jumplist.LoadAppIDOverlay(appidMap); err != nil {
				return fmt.Errorf("failed to load app id map: %w", err)
			}
		}
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().
		StringVar(&appidMap, "appid-map", "", "YAML file mapping application ids to friendly names")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as indented JSON
func printJSON(v interface{}) error {
	return writeJSON(v, true)
}

// writeJSON outputs data as JSON, compact unless pretty is set
func writeJSON(v interface{}, pretty bool) error {
	encoder := json.NewEncoder(os.Stdout)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
