// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ik5/sf2pack/soundfont"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.sf2>",
		Short: "Print the INFO fields and preset table of a SoundFont 2 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			sum, err := soundfont.ReadSummary(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			return printSummary(cmd.OutOrStdout(), sum)
		},
	}
}

func printSummary(w io.Writer, sum *soundfont.Summary) error {
	info := sum.Info
	fmt.Fprintf(w, "Name:     %s\n", info.Name)
	fmt.Fprintf(w, "Engine:   %s\n", info.Engine)
	fmt.Fprintf(w, "Version:  %d.%d\n", info.VersionMajor, info.VersionMinor)
	if info.ROM != "" {
		fmt.Fprintf(w, "ROM:      %s\n", info.ROM)
	}
	if info.Software != "" {
		fmt.Fprintf(w, "Software: %s\n", info.Software)
	}
	fmt.Fprintf(w, "Samples:  %d (%d points)\n", len(sum.Samples), sum.SampleDataPoints)
	fmt.Fprintf(w, "Presets:  %d\n\n", len(sum.Presets))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BANK\tPROGRAM\tNAME")
	for _, p := range sum.Presets {
		fmt.Fprintf(tw, "%d\t%d\t%s\n", p.Bank, p.Program, p.Name)
	}

	return tw.Flush()
}
