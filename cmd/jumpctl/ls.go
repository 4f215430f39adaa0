package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/jumpkit/jumplist"
)

func init() {
	rootCmd.AddCommand(newLsCmd())
}

func newLsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "ls <file>",
		Short: "List the streams of an automatic jump list container",
		Long: `Lists the named streams inside an automatic jump list's compound
container, marking the streams that a DestList entry references.

Example:
  jumpctl ls 5f7b5f1e01b83767.automaticDestinations-ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(args[0], jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	return cmd
}

func runLs(path string, jsonOut bool) error {
	infos, err := jumplist.ListStreams(path)
	if err != nil {
		return err
	}

	// Streams referenced by a DestList entry ordinal (lowercase hex name).
	referenced := make(map[string]bool)
	if rec, err := jumplist.DecodeFile(path); err == nil && rec.DestList != nil {
		for _, e := range rec.DestList.Entries {
			referenced[strconv.FormatUint(uint64(e.EntryNumber), 16)] = true
		}
	}

	if jsonOut {
		type streamRow struct {
			jumplist.StreamInfo
			Referenced bool `json:"referenced"`
		}
		rows := make([]streamRow, 0, len(infos))
		for _, info := range infos {
			rows = append(rows, streamRow{StreamInfo: info, Referenced: referenced[info.Name]})
		}
		return printJSON(rows)
	}

	cells := make([][]string, 0, len(infos))
	for _, info := range infos {
		mark := ""
		if referenced[info.Name] {
			mark = "*"
		}
		cells = append(cells, []string{info.Name, fmt.Sprintf("%d", info.Size), mark})
	}
	printInfo("%s\n", renderTable(
		[]string{"Stream", "Size", "DestList"},
		cells,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))
	return nil
}
