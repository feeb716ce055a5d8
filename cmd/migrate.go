package cmd

import (
	"buildflow-backend/database"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	Run: func(cmd *cobra.Command, args []string) {
		database.Connect()
		if err := database.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		log.Info().Msg("migrations applied")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
