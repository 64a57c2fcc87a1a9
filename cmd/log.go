package cmd

import (
	"fmt"

	"github.com/sealkit/skseal/internal/audit"
	"github.com/sealkit/skseal/internal/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logLimit int

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "number of recent entries to show")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Shows recent seal and unseal operations from the audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		entries, err := audit.ReadEntries()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read audit log: %v", err)
		}

		if len(entries) == 0 {
			fmt.Println(color.CyanString("→") + " No operations recorded yet " +
				color.HiBlackString("("+audit.LogPath()+")"))
			return nil
		}

		start := 0
		if logLimit > 0 && len(entries) > logLimit {
			start = len(entries) - logLimit
		}

		for _, entry := range entries[start:] {
			marker := color.GreenString("✓")
			if entry.Outcome != "ok" && entry.Outcome != "" {
				marker = color.RedString("✗")
			}
			line := fmt.Sprintf("%s %s %-6s", marker, entry.Timestamp, entry.Operation)
			if entry.Fingerprint != "" {
				line += " " + color.CyanString(utils.AbbreviateFingerprint(entry.Fingerprint))
			}
			if entry.Device != "" {
				line += " " + color.HiBlackString("("+entry.Device+")")
			}
			fmt.Println(line)
		}

		return nil
	},
}
