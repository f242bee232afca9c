package rankings

import "github.com/spf13/cobra"

var RankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Ranking snapshot commands",
	Long:  "Load and inspect the offline ranking snapshots charts are assembled from",
}
