package cmd

import (
	"github.com/emrgen/papernote/internal/config"
	"github.com/emrgen/papernote/internal/model"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "draft database commands",
}

func init() {
	dbCmd.AddCommand(Migrate())
}

func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the draft database",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := config.GetDb(cfg)
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			return model.Migrate(db)
		},
	}

	return command
}
