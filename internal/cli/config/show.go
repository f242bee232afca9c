package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"tastehub/pkg/config"
)

var configPath string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective server configuration after defaults and environment overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		fmt.Println("TasteHub Configuration:")
		fmt.Println("")
		fmt.Printf("Server:\n")
		fmt.Printf("  Host: %s\n", cfg.Server.Host)
		fmt.Printf("  HTTP Port: %d\n", cfg.Server.HTTPPort)
		fmt.Printf("  Rate Limit: %.1f req/s (burst %d)\n", cfg.Server.RatePerSecond, cfg.Server.RateBurst)
		fmt.Println("")
		fmt.Printf("Database:\n")
		fmt.Printf("  Host: %s:%d\n", cfg.Database.Host, cfg.Database.Port)
		fmt.Printf("  Database: %s\n", cfg.Database.Database)
		fmt.Printf("  User: %s\n", cfg.Database.User)
		fmt.Printf("  SSL Mode: %s\n", cfg.Database.SSLMode)
		fmt.Println("")
		fmt.Printf("Redis:\n")
		if cfg.Redis.Enabled {
			fmt.Printf("  Addr: %s (db %d, ttl %s)\n", cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.TTL)
		} else {
			fmt.Printf("  Disabled\n")
		}
		fmt.Println("")
		fmt.Printf("Storage:\n")
		fmt.Printf("  Public Base URL: %s\n", cfg.Storage.PublicBaseURL)

		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&configPath, "config", "./configs/development.yaml", "config file path")
	ConfigCmd.AddCommand(showCmd)
}
