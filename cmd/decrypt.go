package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sealkit/skseal/internal/configs"
	"github.com/sealkit/skseal/internal/utils"
	"github.com/sealkit/skseal/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	decryptInPath  string
	decryptOutPath string
)

func init() {
	decryptCmd.Flags().StringVar(&decryptInPath, "in", "", "read the envelope from a file instead of an argument or stdin")
	decryptCmd.Flags().StringVarP(&decryptOutPath, "out", "o", "", "write the payload to a file instead of stdout")
}

var decryptCmd = &cobra.Command{
	Use:     "decrypt [envelope]",
	Aliases: []string{"unseal", "d"},
	Short:   "Unseals an envelope back into its payload using your security key",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting decrypt command")

		config, err := configs.LoadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}

		envelope, err := readEnvelope(args)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read envelope: %v", err)
		}

		resolvedKey := workflows.ResolveKeyPath(keyPath, config)
		Logger.Debugf("Using credential at %s", resolvedKey)

		spinner, cleanup := startSpinner("Touch your security key...")

		result, err := workflows.Unseal(cmd.Context(), workflows.UnsealOptions{
			Envelope:     envelope,
			KeyPath:      resolvedKey,
			TouchTimeout: config.TouchTimeout(),
		})
		if err != nil {
			Logger.Errorf("Unseal failed: %v", err)
			spinner.FinalMSG = friendlyFailure("unseal the envelope", err)
			cleanup()
			return err
		}
		Logger.Infof("Envelope unsealed with %s", result.Fingerprint)

		if decryptOutPath != "" {
			if err := utils.WriteFileOrStdout(decryptOutPath, result.Plaintext); err != nil {
				spinner.FinalMSG = color.RedString("✗") + " " + err.Error()
				cleanup()
				return err
			}
			spinner.FinalMSG = color.GreenString("✓") + " Payload written to " + color.YellowString(decryptOutPath)
			cleanup()
			return nil
		}

		// The payload is the user's secret; never decorate it, just print it.
		cleanup()
		return utils.WriteFileOrStdout("", result.Plaintext)
	},
}

// readEnvelope resolves the envelope from, in order: the positional
// argument, the --in file, or piped stdin. Envelopes are not secret, so
// there is no hidden prompt; interactive runs must pass the envelope
// explicitly.
func readEnvelope(args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	if decryptInPath != "" {
		data, err := os.ReadFile(decryptInPath)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	if !utils.IsTerminal() {
		data, err := utils.ReadStdin()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	return "", fmt.Errorf("no envelope provided (pass it as an argument, via --in, or on stdin)")
}
