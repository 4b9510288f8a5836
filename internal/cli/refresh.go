package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cfmeyers/tenzing/internal/sync"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Pull the remote state into the local cache",
	Long: `Fetch people, projects, todo lists, and todos from Basecamp and
upsert them into the local cache.

When project_ids is set in the config file, only those projects' todos
are fetched; everything else is always fetched in full.`,
	RunE: runRefresh,
}

func runRefresh(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	fmt.Println("Refreshing from Basecamp...")
	res, err := sync.Refresh(cmd.Context(), client, st, cfg.ProjectIDs)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	fmt.Printf("✓ People:     %d (%d new, %d updated)\n", res.People.Total(), res.People.Inserted, res.People.Updated)
	fmt.Printf("✓ Projects:   %d (%d new, %d updated)\n", res.Projects.Total(), res.Projects.Inserted, res.Projects.Updated)
	fmt.Printf("✓ Todo lists: %d (%d new, %d updated)\n", res.TodoLists.Total(), res.TodoLists.Inserted, res.TodoLists.Updated)
	fmt.Printf("✓ Todos:      %d (%d new, %d updated)\n", res.TodoItems.Total(), res.TodoItems.Inserted, res.TodoItems.Updated)

	if len(res.SkippedProjects) > 0 {
		fmt.Printf("⚠️  Unresolved project ids: %s\n", strings.Join(res.SkippedProjects, ", "))
	}
	if res.Skipped > 0 {
		fmt.Printf("⚠️  Skipped %d records that failed to fetch or convert (see log)\n", res.Skipped)
	}
	return nil
}
