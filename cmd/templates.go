package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tknbr/ocivet/internal/schema"
	"github.com/tknbr/ocivet/internal/ui"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage learned validation templates",
	Long:  `List, inspect, and delete the validation templates ocivet has learned.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		names, err := deps.store.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No templates stored yet. Use 'ocivet learn' to create one.")
			return nil
		}
		fmt.Printf("Templates in %s:\n\n", deps.store.Dir())
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		raw, err := deps.store.Show(args[0])
		if errors.Is(err, schema.ErrNotFound) {
			return fmt.Errorf("no template named %q", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Print(raw)
		return nil
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		name := args[0]
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			prompt := ui.NewTerminalPrompter()
			if !prompt.Confirm(fmt.Sprintf("Delete template %q?", name), false) {
				fmt.Println("Aborted.")
				return nil
			}
		}
		if err := deps.store.Delete(name); err != nil {
			if errors.Is(err, schema.ErrNotFound) {
				return fmt.Errorf("no template named %q", name)
			}
			return err
		}
		fmt.Printf("Deleted template %s.\n", name)
		return nil
	},
}

func init() {
	templatesDeleteCmd.Flags().Bool("force", false, "delete without confirmation")
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesDeleteCmd)
	rootCmd.AddCommand(templatesCmd)
}
