package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/sealkit/skseal/internal/errors"
	"github.com/sealkit/skseal/internal/ui"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that must be called once to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
// This ensures consistent output formatting across all commands.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// friendlyFailure maps a workflow error onto the message shown to the user,
// with a follow-up hint where one helps.
func friendlyFailure(op string, err error) string {
	cross := color.RedString("✗") + " "
	arrow := color.CyanString("→") + " "

	switch {
	case errors.Is(err, kerrors.ErrEmptyPlaintext):
		return cross + "Nothing to seal: the payload is empty"
	case errors.Is(err, kerrors.ErrMalformedEnvelope):
		return cross + "That does not look like a skseal envelope\n" +
			arrow + "Expected a single line of the form " + color.YellowString("challenge:iv:ciphertext")
	case errors.Is(err, kerrors.ErrDecryptFailed):
		return cross + "Decryption failed: wrong key or corrupted data"
	case errors.Is(err, kerrors.ErrCredentialNotFound):
		return cross + "No security key credential found\n" +
			arrow + "Generate one with " + color.YellowString("ssh-keygen -t ed25519-sk") +
			" or point at one with " + color.YellowString("--key")
	case errors.Is(err, kerrors.ErrNotHardwareBacked):
		return cross + "That key is not hardware-backed\n" +
			arrow + "skseal only seals to sk-* keys that live on a FIDO2 security key"
	case errors.Is(err, kerrors.ErrNonDeterministicScheme):
		return cross + "That key's signature scheme cannot re-derive keys\n" +
			arrow + "Use an " + color.YellowString("ed25519-sk") + " key; ecdsa-sk signatures differ on every touch"
	case errors.Is(err, kerrors.ErrAgentUnavailable):
		return cross + "Could not reach your ssh-agent\n" +
			arrow + "Start one with " + color.YellowString(`eval "$(ssh-agent)"`) + " and check " + color.YellowString("SSH_AUTH_SOCK")
	case errors.Is(err, kerrors.ErrCredentialNotInAgent):
		return cross + "Your ssh-agent does not hold this credential\n" +
			arrow + "Load it with " + color.YellowString("ssh-add -K") + " (resident key) or " + color.YellowString("ssh-add <private-key>")
	case errors.Is(err, kerrors.ErrUserDeclined):
		return cross + "The signing request was declined"
	case errors.Is(err, kerrors.ErrOracleTimeout):
		return cross + "Timed out waiting for a security key touch"
	default:
		return cross + "Failed to " + op + "\n" + color.RedString("Error: ") + err.Error()
	}
}
