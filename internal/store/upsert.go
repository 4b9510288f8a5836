package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/cfmeyers/tenzing/internal/model"
)

// UpsertResult reports how many records in a batch were new vs overwritten.
type UpsertResult struct {
	Inserted int
	Updated  int
}

// Total returns the number of records written.
func (r UpsertResult) Total() int { return r.Inserted + r.Updated }

// upsertBatch writes one batch of records in a single transaction. Any
// failure rolls the whole batch back and names the kind and offending id.
func upsertBatch[T any](s *Store, kind model.Kind, table string, cols []string,
	items []*T, id func(*T) int64, args func(*T) ([]any, error)) (UpsertResult, error) {

	var res UpsertResult

	existsQuery := fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", table)
	insertQuery := fmt.Sprintf("INSERT INTO %s (id, %s) VALUES (?%s)",
		table, strings.Join(cols, ", "), strings.Repeat(", ?", len(cols)))
	setClauses := make([]string, len(cols))
	for i, c := range cols {
		setClauses[i] = c + " = ?"
	}
	updateQuery := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(setClauses, ", "))

	tx, err := s.db.Begin()
	if err != nil {
		return res, fmt.Errorf("upsert %ss: begin: %w", kind, err)
	}
	defer tx.Rollback()

	for _, item := range items {
		itemID := id(item)
		vals, err := args(item)
		if err != nil {
			return UpsertResult{}, fmt.Errorf("upsert %s %d: %w", kind, itemID, err)
		}

		var one int
		err = tx.QueryRow(existsQuery, itemID).Scan(&one)
		switch {
		case err == sql.ErrNoRows:
			if _, err := tx.Exec(insertQuery, append([]any{itemID}, vals...)...); err != nil {
				return UpsertResult{}, fmt.Errorf("upsert %s %d: %w", kind, itemID, err)
			}
			res.Inserted++
		case err != nil:
			return UpsertResult{}, fmt.Errorf("upsert %s %d: %w", kind, itemID, err)
		default:
			if _, err := tx.Exec(updateQuery, append(vals, itemID)...); err != nil {
				return UpsertResult{}, fmt.Errorf("upsert %s %d: %w", kind, itemID, err)
			}
			res.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return UpsertResult{}, fmt.Errorf("upsert %ss: commit: %w", kind, err)
	}
	return res, nil
}

var projectCols = []string{
	"created_at", "updated_at", "status", "name", "description", "purpose",
	"clients_enabled", "timesheet_enabled", "color", "bookmark_url", "url",
	"app_url", "dock", "bookmarked",
}

func projectArgs(p *model.Project) ([]any, error) {
	dock, err := encodeJSON(p.Dock)
	if err != nil {
		return nil, err
	}
	return []any{
		timeText(p.CreatedAt), timeText(p.UpdatedAt), p.Status, p.Name,
		p.Description, p.Purpose, p.ClientsEnabled, p.TimesheetEnabled,
		nullStr(p.Color), p.BookmarkURL, p.URL, p.AppURL, dock, p.Bookmarked,
	}, nil
}

// UpsertProjects inserts or overwrites projects by id, atomically.
func (s *Store) UpsertProjects(projects []*model.Project) (UpsertResult, error) {
	return upsertBatch(s, model.KindProject, "projects", projectCols, projects,
		func(p *model.Project) int64 { return p.ID }, projectArgs)
}

var personCols = []string{
	"created_at", "updated_at", "name", "email_address", "admin", "company",
	"attachable_sgid", "personable_type", "owner", "client", "employee",
	"time_zone", "avatar_url", "can_ping", "can_manage_projects",
	"can_manage_people", "can_access_timesheet",
}

func personArgs(p *model.Person) ([]any, error) {
	company, err := encodeJSON(p.Company)
	if err != nil {
		return nil, err
	}
	return []any{
		timeText(p.CreatedAt), timeText(p.UpdatedAt), p.Name, p.EmailAddress,
		p.Admin, company, nullStr(p.AttachableSGID), nullStr(p.PersonableType),
		nullBool(p.Owner), nullBool(p.Client), nullBool(p.Employee),
		nullStr(p.TimeZone), nullStr(p.AvatarURL), nullBool(p.CanPing),
		nullBool(p.CanManageProjects), nullBool(p.CanManagePeople),
		nullBool(p.CanAccessTimesheet),
	}, nil
}

// UpsertPeople inserts or overwrites people by id, atomically.
func (s *Store) UpsertPeople(people []*model.Person) (UpsertResult, error) {
	return upsertBatch(s, model.KindPerson, "people", personCols, people,
		func(p *model.Person) int64 { return p.ID }, personArgs)
}

var todoListCols = []string{
	"created_at", "updated_at", "parent_id", "parent_type", "status",
	"visible_to_clients", "title", "inherits_status", "type", "url", "app_url",
	"bookmark_url", "subscription_url", "comments_count", "comments_url",
	"position", "parent", "bucket", "creator", "description", "completed",
	"completed_ratio", "name", "todos_url", "groups_url", "app_todos_url",
}

func todoListArgs(l *model.TodoList) ([]any, error) {
	parent, err := encodeJSON(l.Parent)
	if err != nil {
		return nil, err
	}
	bucket, err := encodeJSON(l.Bucket)
	if err != nil {
		return nil, err
	}
	creator, err := encodeJSON(l.Creator)
	if err != nil {
		return nil, err
	}
	return []any{
		timeText(l.CreatedAt), timeText(l.UpdatedAt), nullInt(l.ParentID),
		nullStr(l.ParentType), l.Status, l.VisibleToClients, l.Title,
		l.InheritsStatus, l.Type, l.URL, l.AppURL, l.BookmarkURL,
		l.SubscriptionURL, l.CommentsCount, l.CommentsURL, l.Position,
		parent, bucket, creator, l.Description, l.Completed, l.CompletedRatio,
		l.Name, l.TodosURL, l.GroupsURL, l.AppTodosURL,
	}, nil
}

// UpsertTodoLists inserts or overwrites to-do lists by id, atomically.
func (s *Store) UpsertTodoLists(lists []*model.TodoList) (UpsertResult, error) {
	return upsertBatch(s, model.KindTodoList, "todolists", todoListCols, lists,
		func(l *model.TodoList) int64 { return l.ID }, todoListArgs)
}

var todoItemCols = []string{
	"created_at", "updated_at", "parent_id", "parent_type", "status",
	"visible_to_clients", "title", "inherits_status", "type", "url", "app_url",
	"bookmark_url", "subscription_url", "comments_count", "comments_url",
	"position", "parent", "bucket", "creator", "description", "completed",
	"content", "starts_on", "due_on", "assignees", "assignee_ids",
	"completion_subscribers", "completion_url",
}

func todoItemArgs(t *model.TodoItem) ([]any, error) {
	parent, err := encodeJSON(t.Parent)
	if err != nil {
		return nil, err
	}
	bucket, err := encodeJSON(t.Bucket)
	if err != nil {
		return nil, err
	}
	creator, err := encodeJSON(t.Creator)
	if err != nil {
		return nil, err
	}
	assignees, err := encodeJSON(t.Assignees)
	if err != nil {
		return nil, err
	}
	assigneeIDs, err := encodeJSON(t.AssigneeIDs)
	if err != nil {
		return nil, err
	}
	subscribers, err := encodeJSON(t.CompletionSubscribers)
	if err != nil {
		return nil, err
	}
	return []any{
		timeText(t.CreatedAt), timeText(t.UpdatedAt), nullInt(t.ParentID),
		nullStr(t.ParentType), t.Status, t.VisibleToClients, t.Title,
		t.InheritsStatus, t.Type, t.URL, t.AppURL, t.BookmarkURL,
		t.SubscriptionURL, t.CommentsCount, t.CommentsURL, t.Position,
		parent, bucket, creator, t.Description, t.Completed, t.Content,
		nullDate(t.StartsOn), nullDate(t.DueOn), assignees, assigneeIDs,
		subscribers, t.CompletionURL,
	}, nil
}

// UpsertTodoItems inserts or overwrites to-do items by id, atomically.
// The derived assignee_ids column is written alongside assignees on every
// call so the two can never drift apart.
func (s *Store) UpsertTodoItems(items []*model.TodoItem) (UpsertResult, error) {
	return upsertBatch(s, model.KindTodoItem, "todoitems", todoItemCols, items,
		func(t *model.TodoItem) int64 { return t.ID }, todoItemArgs)
}
