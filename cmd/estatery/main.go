package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/estatery/estatery/internal/interfaces/cli/migrate"
	"github.com/estatery/estatery/internal/interfaces/cli/server"
	"github.com/estatery/estatery/internal/interfaces/cli/user"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "estatery",
		Short: "Estatery - real-estate marketplace API",
		Long:  `Estatery serves the listing marketplace API and ships the migration and account administration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		user.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
