// @title Peds Aftercare API
// @version 1.0
// @description Recordatorios de medicación y clasificación de riesgo de síntomas para el cuidado pediátrico post-alta.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "aftercare",
		Short:         "Peds post-discharge reminders and symptom risk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "directory containing aftercare.(yaml|json|toml)")

	root.AddCommand(newServeCommand(&configPath))
	root.AddCommand(newMCPCommand(&configPath))
	root.AddCommand(newCheckCommand(&configPath))

	return root
}
