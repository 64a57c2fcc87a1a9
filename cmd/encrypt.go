package cmd

import (
	"os"

	"github.com/sealkit/skseal/internal/configs"
	"github.com/sealkit/skseal/internal/utils"
	"github.com/sealkit/skseal/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	encryptInPath  string
	encryptOutPath string
)

func init() {
	encryptCmd.Flags().StringVar(&encryptInPath, "in", "", "read the payload from a file instead of an argument or stdin")
	encryptCmd.Flags().StringVarP(&encryptOutPath, "out", "o", "", "write the envelope to a file instead of stdout")
}

var encryptCmd = &cobra.Command{
	Use:     "encrypt [payload]",
	Aliases: []string{"seal", "e"},
	Short:   "Seals a payload into a text envelope using your security key",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting encrypt command")

		config, err := configs.LoadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}

		plaintext, err := readPayload(args)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read payload: %v", err)
		}
		Logger.Debugf("Payload is %d bytes", len(plaintext))

		resolvedKey := workflows.ResolveKeyPath(keyPath, config)
		Logger.Debugf("Using credential at %s", resolvedKey)

		spinner, cleanup := startSpinner("Touch your security key...")

		result, err := workflows.Seal(cmd.Context(), workflows.SealOptions{
			Plaintext:    plaintext,
			KeyPath:      resolvedKey,
			TouchTimeout: config.TouchTimeout(),
		})
		if err != nil {
			Logger.Errorf("Seal failed: %v", err)
			spinner.FinalMSG = friendlyFailure("seal the payload", err)
			cleanup()
			return err
		}
		Logger.Infof("Payload sealed with %s", result.Fingerprint)

		if encryptOutPath != "" {
			if err := utils.WriteFileOrStdout(encryptOutPath, []byte(result.Envelope)); err != nil {
				spinner.FinalMSG = color.RedString("✗") + " " + err.Error()
				cleanup()
				return err
			}
			spinner.FinalMSG = color.GreenString("✓") + " Payload sealed with " +
				color.CyanString(utils.AbbreviateFingerprint(result.Fingerprint)) +
				"\nEnvelope written to " + color.YellowString(encryptOutPath)
			cleanup()
			return nil
		}

		if utils.StdoutIsTerminal() {
			spinner.FinalMSG = color.GreenString("✓") + " Payload sealed with " +
				color.CyanString(utils.AbbreviateFingerprint(result.Fingerprint)) +
				"\n" + result.Envelope
			cleanup()
			return nil
		}

		// Piped: emit the bare envelope only.
		cleanup()
		return utils.WriteFileOrStdout("", []byte(result.Envelope))
	},
}

// readPayload resolves the payload from, in order: the positional argument,
// the --in file, piped stdin, or an interactive hidden prompt.
func readPayload(args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "" {
		return []byte(args[0]), nil
	}
	if encryptInPath != "" {
		return os.ReadFile(encryptInPath)
	}
	if !utils.IsTerminal() {
		return utils.ReadStdin()
	}
	return utils.ReadSecret("Enter payload (input hidden): ")
}
