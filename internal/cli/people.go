package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cfmeyers/tenzing/internal/model"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "List people",
	Long: `List people on the Basecamp account from the local cache.

Examples:
  tenzing people
  tenzing people --remote`,
	RunE: runPeople,
}

var (
	peopleRemote bool
	peopleJSON   bool
)

func init() {
	peopleCmd.Flags().BoolVar(&peopleRemote, "remote", false, "Fetch live from Basecamp instead of the cache")
	peopleCmd.Flags().BoolVar(&peopleJSON, "json", false, "Output JSON")
}

func runPeople(cmd *cobra.Command, args []string) error {
	var people []*model.Person

	if peopleRemote {
		client, err := newClient()
		if err != nil {
			return err
		}
		recs, err := client.ListPeople(cmd.Context())
		if err != nil {
			return err
		}
		for _, rec := range recs {
			p, err := model.PersonFromRecord(rec)
			if err != nil {
				return err
			}
			people = append(people, p)
		}
	} else {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if people, err = st.ListPeople(); err != nil {
			return err
		}
	}

	if peopleJSON {
		return printJSON(people)
	}

	if len(people) == 0 {
		fmt.Println("No people found. Run 'tenzing refresh' first.")
		return nil
	}

	rows := make([][]string, 0, len(people))
	for _, p := range people {
		admin := ""
		if p.Admin {
			admin = "admin"
		}
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.EmailAddress,
			admin,
		})
	}
	printTable([]string{"ID", "Name", "Email", "Role"}, rows)
	return nil
}
