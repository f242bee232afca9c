package rankings

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tastehub/internal/cache"
	"tastehub/internal/repository"
	"tastehub/pkg/config"
	"tastehub/pkg/database"
	"tastehub/pkg/models"
)

var configPath string

// snapshotFile is the on-disk YAML layout produced by the offline ranking
// pipeline. Ranks are implied by list position, starting at 1.
type snapshotFile struct {
	ChartType string `yaml:"chart_type"`
	Charts    []struct {
		ChartID    string  `yaml:"chart_id"`
		ContentIDs []int64 `yaml:"content_ids"`
	} `yaml:"charts"`
}

var loadCmd = &cobra.Command{
	Use:   "load <snapshot.yaml>",
	Short: "Load a ranking snapshot",
	Long:  "Replace the stored ranking snapshot for one chart type from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		var snapshot snapshotFile
		if err := yaml.Unmarshal(raw, &snapshot); err != nil {
			return fmt.Errorf("failed to parse snapshot: %w", err)
		}

		ctype := models.ContentType(snapshot.ChartType)
		if !models.IsValidContentType(ctype) {
			return fmt.Errorf("invalid chart_type %q", snapshot.ChartType)
		}

		var rankings []models.Ranking
		for _, chart := range snapshot.Charts {
			for i, contentID := range chart.ContentIDs {
				rankings = append(rankings, models.Ranking{
					ChartRank: i + 1,
					ChartType: ctype,
					ChartID:   chart.ChartID,
					ContentID: contentID,
				})
			}
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		pool, err := database.NewPGXPool(database.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
			Timeout:         cfg.Database.Timeout,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		rankingRepo := repository.NewRankingRepository(pool)
		if err := rankingRepo.ReplaceAll(ctx, ctype, rankings); err != nil {
			return fmt.Errorf("failed to replace snapshot: %w", err)
		}

		// Assembled charts are cached per type; drop the stale entry.
		if c, err := cache.New(cfg.Redis); err == nil && c != nil {
			c.Invalidate(ctx, fmt.Sprintf("charts:%s", ctype))
			c.Close()
		}

		fmt.Printf("Loaded %d rows across %d charts for %s\n", len(rankings), len(snapshot.Charts), ctype)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&configPath, "config", "./configs/development.yaml", "config file path")
	RankingsCmd.AddCommand(loadCmd)
}
