package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ocivet",
	Short: "A validating, self-correcting front-end for the OCI CLI",
	Long: `ocivet intercepts raw OCI CLI invocations, resolves $VAR references
from your environment, validates the command against locally learned
templates, executes it, and on failure or empty output proposes a
corrected re-run. It can also learn a new validation template from a
command it has seen succeed.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ocivet.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output (internal diagnostics)")
	rootCmd.PersistentFlags().String("templates-dir", "", "directory holding validation templates (default $HOME/.ocivet/templates)")
	rootCmd.PersistentFlags().String("env-file", "", "dotenv file overlaying the process environment (default ./.env)")

	// TODO: add error return here
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("templates_dir", rootCmd.PersistentFlags().Lookup("templates-dir"))
	viper.BindPFlag("env_file", rootCmd.PersistentFlags().Lookup("env-file"))

	viper.SetDefault("env_file", ".env")
	viper.SetDefault("redact.partial", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ocivet")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

// templatesDir resolves the template store location from config, with
// a per-user default.
func templatesDir() (string, error) {
	if dir := viper.GetString("templates_dir"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".ocivet", "templates"), nil
}
