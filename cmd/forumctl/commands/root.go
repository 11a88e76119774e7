package commands

import (
	"fmt"
	"os"

	"Fishing_Forum/internal/config"
	"Fishing_Forum/internal/pkg"
	"Fishing_Forum/internal/repository/mysql"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	dsn     string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "forumctl",
	Short: "Fishing forum operator tool",
	Long: `forumctl manages the fishing forum database.

Themes have no public write API; they are created and removed here.

Examples:
  forumctl migrate
  forumctl theme add lakes "Lake fishing"
  forumctl theme list
  forumctl theme delete lakes`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "MySQL DSN (defaults to MYSQL_DSN / DB_* from the environment)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// openDB --dsn 优先，否则读取配置
func openDB() (*gorm.DB, error) {
	if err := pkg.InitLogger("info", verbose); err != nil {
		return nil, err
	}
	target := dsn
	if target == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		target = cfg.DSN()
	}
	db, err := mysql.InitDB(target, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
