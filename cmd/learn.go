package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tknbr/ocivet/internal/learn"
	"github.com/tknbr/ocivet/internal/redact"
	"github.com/tknbr/ocivet/internal/runner"
	"github.com/tknbr/ocivet/internal/ui"
)

var learnCmd = &cobra.Command{
	Use:   "learn -- <oci command...>",
	Short: "Learn a validation template from a successful command",
	Long: `Runs the given command (with strict variable resolution) and, if it
succeeds, interactively builds a validation template: which flags are
required, which values get a shared $ref or an inferred JSON schema.
Templates with no rules are discarded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.log.Sync()

		policy := redact.Full
		if viper.GetBool("redact.partial") {
			policy = redact.Partial
		}

		learner := &learn.Learner{
			Env:      deps.env,
			Store:    deps.store,
			Runner:   &runner.Exec{Log: deps.log},
			Prompt:   ui.NewTerminalPrompter(),
			Console:  deps.console,
			Redactor: redact.New(policy),
			Log:      deps.log,
		}
		return learner.Learn(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)
}
