package cmd

import (
	"github.com/arnavk07/mocksmith/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a mocksmith project in the current directory",
	Long:  `Create mocksmith.config.json with sensible defaults and the table config directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitializeProject(); err != nil {
			return err
		}

		color.Green("✅ Created %s", config.ConfigFileName)
		color.Cyan("💡 Set DATABASE_URL (or your configured url_env) and run 'mocksmith fill'")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
