package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tknbr/ocivet/internal/redact"
	"github.com/tknbr/ocivet/internal/runner"
	"github.com/tknbr/ocivet/internal/session"
	"github.com/tknbr/ocivet/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <oci command...>",
	Short: "Validate and execute an OCI command",
	Long: `Resolves $VAR references, checks file-path arguments, validates the
command against its stored template if one exists, and executes it.
On failure or an empty result, one corrected re-run may be offered.
The process exit code equals the final OCI CLI exit code.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ci, _ := cmd.Flags().GetBool("ci")
		redactOn, _ := cmd.Flags().GetBool("redact")

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.log.Sync()

		var prompt ui.Prompter = ui.NewTerminalPrompter()
		if ci {
			prompt = ui.Deny{}
		}

		var redactor *redact.Redactor
		if redactOn {
			policy := redact.Full
			if viper.GetBool("redact.partial") {
				policy = redact.Partial
			}
			redactor = redact.New(policy)
		}

		sess := &session.Session{
			Env:      deps.env,
			Store:    deps.store,
			Runner:   &runner.Exec{Log: deps.log},
			Prompt:   prompt,
			Console:  deps.console,
			Redactor: redactor,
			Strict:   ci,
			Log:      deps.log,
		}

		if code := sess.Run(cmd.Context(), args); code != 0 {
			os.Exit(code)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("ci", false, "non-interactive mode: no prompts, fail closed on any ambiguity")
	runCmd.Flags().Bool("redact", true, "redact OCIDs and IP addresses in displayed output (--redact=false to disable)")
	rootCmd.AddCommand(runCmd)
}
