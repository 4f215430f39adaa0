package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/joshuapare/jumpkit/jumplist"
)

// flatColumns is the fixed leading column order for --csv and --table
// output. Keys not listed here follow alphabetically.
var flatColumns = []string{
	"jumplist_file_path",
	"app_id",
	"app_name",
	"target_full_path",
	"name_string",
	"command_line_arguments",
	"mtime",
	"target_size",
}

func init() {
	rootCmd.AddCommand(newParseCmd())
}

func newParseCmd() *cobra.Command {
	var (
		pretty   bool
		flat     bool
		csvOut   bool
		tableOut bool
	)

	cmd := &cobra.Command{
		Use:   "parse <file-or-glob>...",
		Short: "Decode jump list files and print their records",
		Long: `Decodes one or more jump list files and prints the results. Arguments
may be file paths or globs. The default output is one JSON record per
file; --flat emits normalized key/value rows instead, and --csv and
--table render those rows for reporting.

Example:
  jumpctl parse 5f7b5f1e01b83767.automaticDestinations-ms
  jumpctl parse '*.customDestinations-ms' --csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args, pretty, flat, csvOut, tableOut)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
	cmd.Flags().BoolVar(&flat, "flat", false, "Output normalized key/value rows as JSON")
	cmd.Flags().BoolVar(&csvOut, "csv", false, "Output normalized rows as CSV")
	cmd.Flags().BoolVar(&tableOut, "table", false, "Output normalized rows as a table")
	return cmd
}

func runParse(args []string, pretty, flat, csvOut, tableOut bool) error {
	paths, err := expandArgs(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files match %v", args)
	}

	var records []*jumplist.Record
	for _, path := range paths {
		slog.Debug("decoding", "path", path)
		rec, err := jumplist.DecodeFile(path)
		if err != nil {
			slog.Error("decode failed", "path", path, "error", err)
			continue
		}
		if rec.DestList != nil && rec.DestList.Empty() {
			slog.Debug("empty jump list", "path", path)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return fmt.Errorf("no files decoded successfully")
	}

	switch {
	case csvOut:
		return writeCSV(records)
	case tableOut:
		return writeTable(records)
	case flat:
		return writeJSON(flattenAll(records), pretty)
	}
	// One record per line by default; --pretty indents.
	for _, rec := range records {
		if err := writeJSON(rec, pretty); err != nil {
			return err
		}
	}
	return nil
}

// expandArgs resolves each argument as a glob pattern, falling back to a
// literal path when the pattern matches nothing.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			if _, serr := os.Stat(arg); serr == nil {
				paths = append(paths, arg)
			}
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// columnsFor returns the fixed leading columns plus any extra keys found in
// the rows, sorted, so every observed key gets a column.
func columnsFor(rows []map[string]string) []string {
	known := make(map[string]bool, len(flatColumns))
	cols := append([]string(nil), flatColumns...)
	for _, c := range flatColumns {
		known[c] = true
	}
	var extra []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			if !known[k] && !seen[k] {
				extra = append(extra, k)
				seen[k] = true
			}
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}

func flattenAll(records []*jumplist.Record) []map[string]string {
	var rows []map[string]string
	for _, rec := range records {
		rows = append(rows, rec.Flatten()...)
	}
	return rows
}

func writeCSV(records []*jumplist.Record) error {
	rows := flattenAll(records)
	cols := columnsFor(rows)

	w := csv.NewWriter(os.Stdout)
	if err := w.Write(cols); err != nil {
		return err
	}
	record := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			record[i] = row[c]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeTable(records []*jumplist.Record) error {
	rows := flattenAll(records)
	cols := columnsFor(rows)

	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cell := make([]string, len(cols))
		for i, c := range cols {
			cell[i] = row[c]
		}
		cells = append(cells, cell)
	}

	aligns := make([]columnAlignment, len(cols))
	for i, c := range cols {
		if c == "target_size" {
			aligns[i] = alignRight
		}
	}
	printInfo("%s\n", renderTable(cols, cells, aligns))
	return nil
}
