package cmd

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/Jai-Chauhan/SCT-DS-2/internal/archive"
)

var listCmd = &cobra.Command{
	Use:   "list <archive.zip>",
	Short: "List archive entries and the datasets a run can select",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := archive.List(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "(empty archive)")
			return nil
		}
		// Datasets are keyed by base name; a repeated name keeps its first position.
		order := map[string]int{}
		for _, e := range entries {
			if !e.IsCSV {
				continue
			}
			base := path.Base(e.Name)
			if _, ok := order[base]; !ok {
				order[base] = len(order) + 1
			}
		}
		for _, e := range entries {
			switch {
			case e.IsDir:
				fmt.Fprintf(out, "- %s (dir)\n", e.Name)
			case e.IsCSV:
				n := order[path.Base(e.Name)]
				mark := ""
				if n == 1 {
					mark = ", default"
				}
				fmt.Fprintf(out, "- %s (%d bytes) [dataset %d: %s%s]\n", e.Name, e.Size, n, path.Base(e.Name), mark)
			default:
				fmt.Fprintf(out, "- %s (%d bytes)\n", e.Name, e.Size)
			}
		}
		if len(order) == 0 {
			fmt.Fprintln(out, "⚠ no CSV entries; `eda run` will fail on this archive")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
