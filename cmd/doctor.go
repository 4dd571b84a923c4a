package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tknbr/ocivet/internal/cli"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the wrapped OCI CLI is installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := cli.NewDependencyChecker(viper.GetBool("debug"))

		fmt.Println("\nCLI Tool Status:")
		fmt.Println("----------------")

		missingRequired := false
		for _, dep := range checker.CheckAll() {
			icon := "+"
			if !dep.Installed {
				icon = "-"
				if dep.Required {
					missingRequired = true
				}
			}

			version := dep.Version
			if version == "" {
				version = "not installed"
			}

			required := ""
			if dep.Required {
				required = " (required)"
			}

			fmt.Printf("  [%s] %s: %s%s\n", icon, dep.Name, version, required)
			if dep.Message != "" {
				fmt.Printf("      %s\n", dep.Message)
			}
		}
		fmt.Println()

		if missingRequired {
			return fmt.Errorf("required tools are missing")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
