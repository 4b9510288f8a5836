package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cfmeyers/tenzing/internal/store"
	"github.com/cfmeyers/tenzing/internal/todos"
	"github.com/cfmeyers/tenzing/internal/tui"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show or set the todo you are working on",
	Long: `Show or set the currently selected todo.

Every selection is appended to a history; the latest one wins.

Examples:
  tenzing current             # Show the current todo
  tenzing current set 123456  # Select a todo by id
  tenzing current pick        # Pick interactively from your active todos`,
	RunE: runCurrentShow,
}

var currentSetCmd = &cobra.Command{
	Use:   "set [todo-id]",
	Short: "Select a todo by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runCurrentSet,
}

var currentPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick the current todo interactively",
	RunE:  runCurrentPick,
}

func init() {
	currentCmd.AddCommand(currentSetCmd)
	currentCmd.AddCommand(currentPickCmd)
}

func runCurrentShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	todoID, err := st.CurrentTodo()
	if errors.Is(err, store.ErrNotFound) {
		fmt.Println("No current todo. Set one with 'tenzing current set <id>' or 'tenzing current pick'.")
		return nil
	}
	if err != nil {
		return err
	}

	item, err := st.GetTodoItem(todoID)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Printf("Current todo: %d (not in the local cache; run 'tenzing refresh')\n", todoID)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Current todo: %d  %s  [%s]\n", item.ID, item.Title, item.ParentTitle())
	return nil
}

func runCurrentSet(cmd *cobra.Command, args []string) error {
	todoID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid todo id %q", args[0])
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.RecordCurrentTodo(todoID); err != nil {
		return err
	}

	fmt.Printf("✓ Current todo set to %d\n", todoID)
	return nil
}

func runCurrentPick(cmd *cobra.Command, args []string) error {
	if cfg.UserID == "" {
		return fmt.Errorf("no user id: set user_id in the config file")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	query := todos.Query{Store: st}
	items, err := query.ForUser(cmd.Context(), cfg.UserID, todos.SourceCache)
	if err != nil {
		return err
	}
	items = todos.Active(items)
	todos.SortByParentList(items)

	if len(items) == 0 {
		fmt.Println("No active todos in the cache. Run 'tenzing refresh' first.")
		return nil
	}

	choice, err := tui.PickTodo(items)
	if err != nil {
		return err
	}
	if choice == nil {
		return nil
	}

	if err := st.RecordCurrentTodo(choice.ID); err != nil {
		return err
	}

	fmt.Printf("✓ Current todo set to %d: %s\n", choice.ID, choice.Title)
	return nil
}
