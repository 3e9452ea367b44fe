package app

import (
	"github.com/spf13/cobra"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/trofos-project/trofos/internal/config"
	"github.com/trofos-project/trofos/internal/csvimport"
	"github.com/trofos-project/trofos/internal/db/dsn"
)

func init() { //nolint: gochecknoinits
	importCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")
	importCmd.Flags().Uint64Var(&importCourseID, "course", 0, "Target course id (required)")
	importCmd.Flags().BoolVar(&importAssignments, "assignments", false,
		"Treat the file as project assignment pairs instead of a course roster")
	_ = importCmd.MarkFlagRequired("course")

	rootCmd.AddCommand(importCmd)
}

var (
	importCourseID    uint64
	importAssignments bool

	importCmd = &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import a course roster or project assignments from a CSV file",
		Args:  cobra.ExactArgs(1),
		PreRun: func(_ *cobra.Command, _ []string) {
			if cfg, err = config.ReadConfig(configPath); err != nil {
				panic(err)
			}
		},
		RunE: func(_ *cobra.Command, args []string) error {
			db, err := gorm.Open(gormmysql.Open(dsn.Create(&cfg)), &gorm.Config{})
			if err != nil {
				return err
			}

			if importAssignments {
				return csvimport.ImportProjectAssignments(db, args[0], importCourseID)
			}

			return csvimport.ImportCourseData(db, args[0], importCourseID)
		},
	}
)
