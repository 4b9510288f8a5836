package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cfmeyers/tenzing/internal/model"
	"github.com/cfmeyers/tenzing/internal/todos"
)

var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "List your todos",
	Long: `List todos assigned to you, sorted by their todo list.

Completed and trashed todos are hidden unless --all is given.

Examples:
  tenzing todos
  tenzing todos --all
  tenzing todos --remote
  tenzing todos --user 12345 --json`,
	RunE: runTodos,
}

var (
	todosUser   string
	todosAll    bool
	todosRemote bool
	todosJSON   bool
)

func init() {
	todosCmd.Flags().StringVarP(&todosUser, "user", "u", "", "Basecamp person id (defaults to user_id from config)")
	todosCmd.Flags().BoolVarP(&todosAll, "all", "a", false, "Include completed and trashed todos")
	todosCmd.Flags().BoolVar(&todosRemote, "remote", false, "Walk tracked projects live instead of the cache")
	todosCmd.Flags().BoolVar(&todosJSON, "json", false, "Output JSON")
}

func runTodos(cmd *cobra.Command, args []string) error {
	userID := todosUser
	if userID == "" {
		userID = cfg.UserID
	}
	if userID == "" {
		return fmt.Errorf("no user id: pass --user or set user_id in the config file")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	query := todos.Query{Store: st, ProjectIDs: cfg.ProjectIDs}
	source := todos.SourceCache
	if todosRemote {
		client, err := newClient()
		if err != nil {
			return err
		}
		query.Client = client
		source = todos.SourceRemote
	}

	items, err := query.ForUser(cmd.Context(), userID, source)
	if err != nil {
		return err
	}
	if !todosAll {
		items = todos.Active(items)
	}
	todos.SortByParentList(items)

	if todosJSON {
		return printJSON(items)
	}

	if len(items) == 0 {
		fmt.Println("No todos found. Run 'tenzing refresh' first.")
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			truncate(item.Title, 50),
			item.ParentTitle(),
			dueText(item),
			statusText(item),
		})
	}
	printTable([]string{"ID", "Title", "List", "Due", "Status"}, rows)
	return nil
}

func dueText(item *model.TodoItem) string {
	if item.DueOn == nil {
		return ""
	}
	return item.DueOn.Format("Jan 2")
}

func statusText(item *model.TodoItem) string {
	switch {
	case item.Completed:
		return "done"
	case item.Status == model.StatusTrashed:
		return "trashed"
	default:
		return item.Status
	}
}
