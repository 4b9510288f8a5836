package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/cfmeyers/tenzing/internal/model"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects",
	Long: `List Basecamp projects from the local cache.

Examples:
  tenzing projects
  tenzing projects --remote
  tenzing projects --json`,
	RunE: runProjects,
}

var (
	projectsRemote bool
	projectsJSON   bool
)

func init() {
	projectsCmd.Flags().BoolVar(&projectsRemote, "remote", false, "Fetch live from Basecamp instead of the cache")
	projectsCmd.Flags().BoolVar(&projectsJSON, "json", false, "Output JSON")
}

func runProjects(cmd *cobra.Command, args []string) error {
	var projects []*model.Project

	if projectsRemote {
		client, err := newClient()
		if err != nil {
			return err
		}
		recs, err := client.ListProjects(cmd.Context())
		if err != nil {
			return err
		}
		for _, rec := range recs {
			p, err := model.ProjectFromRecord(rec)
			if err != nil {
				return err
			}
			projects = append(projects, p)
		}
	} else {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if projects, err = st.ListProjects(); err != nil {
			return err
		}
	}

	if projectsJSON {
		return printJSON(projects)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found. Run 'tenzing refresh' first.")
		return nil
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			truncate(p.Description, 40),
			p.CreatedAt.Format(time.DateOnly),
		})
	}
	printTable([]string{"ID", "Name", "Description", "Created"}, rows)
	return nil
}
