package cmd

import (
	"os"
	"strings"

	logger "github.com/sealkit/skseal/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	keyPath string
	Logger  logger.Logger

	rootCmd = &cobra.Command{
		Use:   "skseal",
		Short: "Seal and unseal short secrets with your FIDO2 security key",
		Long: `skseal encrypts and decrypts short text payloads with a symmetric key that
is never stored anywhere. The key is re-derived on demand from a signature
your FIDO2 security key produces over a random challenge, through your
existing OpenSSH sk-* credential and ssh-agent.

Sealing and unsealing each cost exactly one key touch. The output envelope
(challenge:iv:ciphertext) is plain text: store it in a file, a password
field, or a note, and unseal it later on any machine that has the same
security key plugged in.

Quick usage:
  skseal init                    # Write the initial config
  skseal keys                    # See which agent keys are usable
  skseal encrypt "hunter2"       # Seal a payload (one touch)
  skseal decrypt <envelope>      # Unseal it again (one touch)
  skseal doctor --probe          # Check your device can ever unseal`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing skseal with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	rootCmd.PersistentFlags().StringVarP(&keyPath, "key", "k", "", "path to the sk-* public key (.pub) to seal with")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(logCmd)
}

// normalizeFlagName lets underscore spellings like --default_key keep working.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// Execute runs the root command. Commands render their own failure messages,
// so all that is left here is the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
