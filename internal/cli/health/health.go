package health

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tastehub/internal/cache"
	"tastehub/pkg/config"
	"tastehub/pkg/database"
)

var configPath string

var HealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backing service health",
	Long:  "Verify connectivity to PostgreSQL and Redis using the configured settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		db, err := database.NewDB(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.Database,
			SSLMode:  cfg.Database.SSLMode,
			Timeout:  cfg.Database.Timeout,
		})
		if err != nil {
			fmt.Printf("PostgreSQL: ✗ %v\n", err)
			return err
		}
		defer db.Close()

		if err := db.HealthCheck(ctx); err != nil {
			fmt.Printf("PostgreSQL: ✗ %v\n", err)
			return err
		}
		fmt.Printf("PostgreSQL: ✓ %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)

		if cfg.Redis.Enabled {
			c, err := cache.New(cfg.Redis)
			if err != nil {
				fmt.Printf("Redis: ✗ %v\n", err)
				return err
			}
			defer c.Close()
			fmt.Printf("Redis: ✓ %s\n", cfg.Redis.Addr)
		} else {
			fmt.Println("Redis: disabled")
		}

		return nil
	},
}

func init() {
	HealthCmd.Flags().StringVar(&configPath, "config", "./configs/development.yaml", "config file path")
}
