// Package main provides the sexcheck command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sexcheck",
		Short: "Infer genetic sex from an indexed VCF",
		Long: `sexcheck infers a sample's genetic sex from a tabix-indexed VCF by
comparing read depth and het/hom call ratios between the sex
chromosomes and the autosomal baseline. Two independent methods must
agree for a confident call; disagreement is reported, never hidden.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cobra.OnInitialize(initConfig)

	root.AddCommand(newRunCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// initConfig loads ~/.sexcheck.yaml and SEXCHECK_* environment variables.
// A missing config file is not an error.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetConfigName(".sexcheck")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("SEXCHECK")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}
