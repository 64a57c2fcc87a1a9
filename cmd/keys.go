package cmd

import (
	"fmt"
	"strings"

	"github.com/sealkit/skseal/internal/utils"
	"github.com/sealkit/skseal/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Lists the ssh-agent's identities and which ones skseal can use",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keys command")
		spinner, cleanup := startSpinner("Listing agent identities...")
		defer cleanup()

		result, err := workflows.ListKeys(cmd.Context(), nil)
		if err != nil {
			Logger.Errorf("Listing keys failed: %v", err)
			spinner.FinalMSG = friendlyFailure("list agent identities", err)
			return err
		}

		if len(result.Keys) == 0 {
			spinner.FinalMSG = color.RedString("✗") + " Your ssh-agent holds no identities\n" +
				color.CyanString("→") + " Load your security key with " + color.YellowString("ssh-add -K")
			return nil
		}

		var rows strings.Builder
		usable := 0
		for _, key := range result.Keys {
			if key.Usable {
				usable++
				rows.WriteString("  " + color.GreenString("✓") + " ")
			} else {
				rows.WriteString("  " + color.RedString("✗") + " ")
			}
			rows.WriteString(color.CyanString(utils.AbbreviateFingerprint(key.Fingerprint)))
			rows.WriteString(" " + key.Type)
			if key.Comment != "" {
				rows.WriteString(" " + key.Comment)
			}
			if !key.Usable {
				rows.WriteString(" " + color.YellowString("("+key.Reason+")"))
			}
			rows.WriteString("\n")
		}

		var header string
		if usable > 0 {
			header = color.GreenString("✓") + fmt.Sprintf(" Found %d usable security key identities\n", usable)
		} else {
			header = color.RedString("✗") + fmt.Sprintf(" No usable security key identities among %d\n", len(result.Keys)) +
				color.CyanString("→") + " Create one with " + color.YellowString("ssh-keygen -t ed25519-sk") + "\n"
		}

		spinner.FinalMSG = header + rows.String()
		return nil
	},
}
