package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/sealkit/skseal/internal/errors"
	"github.com/sealkit/skseal/internal/workflows"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	initDeviceName string
	initDefaultKey string
	initForce      bool
)

func init() {
	initCmd.Flags().StringVar(&initDeviceName, "device-name", "", "name for this install (defaults to the hostname)")
	initCmd.Flags().StringVar(&initDefaultKey, "default-key", "", "credential path to record as the default")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes the initial skseal configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{
			DeviceName: initDeviceName,
			DefaultKey: initDefaultKey,
			Force:      initForce,
		})
		if errors.Is(err, kerrors.ErrAlreadyInitialized) {
			fmt.Println(color.RedString("✗") + " skseal has already been initialized\n" +
				color.CyanString("→") + " Re-run with " + color.YellowString("--force") + " to overwrite the config")
			return err
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		fmt.Println()
		banner := figure.NewColorFigure("skseal", "alligator2", "green", true)
		banner.Print()
		fmt.Println()

		fmt.Println(color.GreenString("✓") + " Configuration written to " + color.YellowString(result.ConfigPath))
		fmt.Println(color.CyanString("→") + " Device UUID: " + result.DeviceUUID)
		fmt.Println(color.CyanString("→") + " Next: plug in your security key and run " + color.YellowString("skseal keys"))
		return nil
	},
}
