package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cfmeyers/tenzing/internal/editor"
	"github.com/cfmeyers/tenzing/internal/model"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a todo from your editor",
	Long: `Open your editor on a todo template, create the todo on Basecamp,
and cache it locally.

The template's frontmatter names the project, todo list, and title; the
markdown body becomes the todo's description.

Examples:
  tenzing new
  tenzing new --list 987654`,
	RunE: runNew,
}

var newListID int64

func init() {
	newCmd.Flags().Int64Var(&newListID, "list", 0, "Pre-fill the todolist id in the template")
}

func runNew(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	draft, err := editor.Compose(cfg.Editor, newListID)
	if err != nil {
		return err
	}

	rec, err := client.CreateTodoItem(cmd.Context(), draft.ProjectID, draft.TodoListID,
		draft.Title, draft.BodyHTML, cfg.UserID)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	created, err := model.TodoItemFromRecord(rec)
	if err != nil {
		return fmt.Errorf("todo created remotely but its record could not be converted: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.UpsertTodoItems([]*model.TodoItem{created}); err != nil {
		// The remote create succeeded; a cache miss here is not fatal.
		log.Err(err).Int64("todo_id", created.ID).Msg("failed to cache created todo")
		fmt.Printf("✓ Created todo %d: %s (not cached; run 'tenzing refresh')\n", created.ID, created.Title)
		return nil
	}

	fmt.Printf("✓ Created todo %d: %s\n", created.ID, created.Title)
	return nil
}
