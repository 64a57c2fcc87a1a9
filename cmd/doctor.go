package cmd

import (
	"strings"

	"github.com/sealkit/skseal/internal/configs"
	"github.com/sealkit/skseal/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var doctorProbe bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorProbe, "probe", false, "also run the signature determinism probe (costs two touches)")
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Checks that your environment can seal and unseal",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting doctor command")

		config, err := configs.LoadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load config: %v", err)
		}
		resolvedKey := workflows.ResolveKeyPath(keyPath, config)

		message := "Checking your environment..."
		if doctorProbe {
			message = "Checking your environment (touch your key twice when prompted)..."
		}
		spinner, cleanup := startSpinner(message)
		defer cleanup()

		result, err := workflows.Doctor(cmd.Context(), workflows.DoctorOptions{
			KeyPath:      resolvedKey,
			TouchTimeout: config.TouchTimeout(),
			Probe:        doctorProbe,
		})
		if err != nil {
			Logger.Errorf("Doctor failed: %v", err)
			spinner.FinalMSG = friendlyFailure("check the environment", err)
			return err
		}

		var b strings.Builder
		for _, check := range result.Checks {
			if check.Passed {
				b.WriteString("  " + color.GreenString("✓") + " " + check.Name)
			} else {
				b.WriteString("  " + color.RedString("✗") + " " + check.Name)
			}
			if check.Detail != "" {
				b.WriteString(" " + color.HiBlackString(check.Detail))
			}
			b.WriteString("\n")
		}

		if result.Healthy {
			header := color.GreenString("✓") + " Everything looks good\n"
			if !doctorProbe {
				header += color.CyanString("→") + " Run with " + color.YellowString("--probe") +
					" to verify your device signs deterministically\n"
			}
			spinner.FinalMSG = header + b.String()
			return nil
		}

		spinner.FinalMSG = color.RedString("✗") + " Some checks failed\n" + b.String()
		return nil
	},
}
