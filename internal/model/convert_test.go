package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func projectRecord(id int64) Record {
	return Record{
		"id":                float64(id),
		"created_at":        "2024-05-01T10:00:00Z",
		"updated_at":        "2024-05-02T11:30:00Z",
		"status":            "active",
		"name":              "Launch",
		"description":       "Ship the launch",
		"purpose":           "topic",
		"clients_enabled":   false,
		"timesheet_enabled": true,
		"bookmark_url":      "https://3.basecampapi.com/195310/my/bookmarks/abc.json",
		"url":               "https://3.basecampapi.com/195310/projects/1.json",
		"app_url":           "https://3.basecamp.com/195310/projects/1",
		"dock": []any{
			map[string]any{"id": float64(100), "name": "todoset", "title": "To-dos"},
		},
		"bookmarked": true,
	}
}

func personRecord(id int64) Record {
	return Record{
		"id":            float64(id),
		"created_at":    "2024-05-01T10:00:00Z",
		"updated_at":    "2024-05-02T11:30:00Z",
		"name":          "Ada Lovelace",
		"email_address": "ada@example.com",
		"admin":         true,
	}
}

func todoListRecord(id int64) Record {
	return Record{
		"id":                 float64(id),
		"created_at":         "2024-05-01T10:00:00Z",
		"updated_at":         "2024-05-02T11:30:00Z",
		"status":             "active",
		"visible_to_clients": false,
		"title":              "Backend",
		"inherits_status":    true,
		"type":               "Todolist",
		"url":                "https://3.basecampapi.com/195310/buckets/1/todolists/9.json",
		"app_url":            "https://3.basecamp.com/195310/buckets/1/todolists/9",
		"bookmark_url":       "https://3.basecampapi.com/195310/my/bookmarks/xyz.json",
		"subscription_url":   "https://3.basecampapi.com/195310/buckets/1/recordings/9/subscription.json",
		"comments_count":     float64(0),
		"comments_url":       "https://3.basecampapi.com/195310/buckets/1/recordings/9/comments.json",
		"position":           float64(1),
		"parent":             map[string]any{"id": float64(55), "type": "Project", "title": "Launch"},
		"bucket":             map[string]any{"id": float64(1), "name": "Launch", "type": "Project"},
		"creator":            map[string]any{"id": float64(7), "name": "Ada Lovelace"},
		"description":        "",
		"completed":          false,
		"completed_ratio":    "3/5",
		"name":               "Backend",
		"todos_url":          "https://3.basecampapi.com/195310/buckets/1/todolists/9/todos.json",
		"groups_url":         "https://3.basecampapi.com/195310/buckets/1/todolists/9/groups.json",
		"app_todos_url":      "https://3.basecamp.com/195310/buckets/1/todolists/9/todos",
	}
}

func todoItemRecord(id int64) Record {
	return Record{
		"id":                 float64(id),
		"created_at":         "2024-05-01T10:00:00Z",
		"updated_at":         "2024-05-02T11:30:00Z",
		"status":             "active",
		"visible_to_clients": false,
		"title":              "Fix the flaky deploy",
		"inherits_status":    true,
		"type":               "Todo",
		"url":                "https://3.basecampapi.com/195310/buckets/1/todos/31.json",
		"app_url":            "https://3.basecamp.com/195310/buckets/1/todos/31",
		"bookmark_url":       "https://3.basecampapi.com/195310/my/bookmarks/qrs.json",
		"subscription_url":   "https://3.basecampapi.com/195310/buckets/1/recordings/31/subscription.json",
		"comments_count":     float64(2),
		"comments_url":       "https://3.basecampapi.com/195310/buckets/1/recordings/31/comments.json",
		"position":           float64(3),
		"parent":             map[string]any{"id": float64(9), "type": "Todolist", "title": "Backend"},
		"bucket":             map[string]any{"id": float64(1), "name": "Launch", "type": "Project"},
		"creator":            map[string]any{"id": float64(7), "name": "Ada Lovelace"},
		"description":        "<p>It times out</p>",
		"completed":          false,
		"content":            "Fix the flaky deploy",
		"assignees": []any{
			map[string]any{"id": float64(7), "name": "Ada Lovelace"},
		},
		"completion_subscribers": []any{},
		"completion_url":         "https://3.basecampapi.com/195310/buckets/1/todos/31/completion.json",
	}
}

func TestProjectFromRecord(t *testing.T) {
	p, err := ProjectFromRecord(projectRecord(1))
	require.NoError(t, err)
	require.Equal(t, int64(1), p.ID)
	require.Equal(t, "Launch", p.Name)
	require.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), p.CreatedAt)
	require.True(t, p.TimesheetEnabled)
	require.Nil(t, p.Color)
	require.Len(t, p.Dock, 1)
	require.Equal(t, "todoset", p.Dock[0]["name"])
}

func TestProjectFromRecord_OptionalColor(t *testing.T) {
	rec := projectRecord(1)
	rec["color"] = "red"
	p, err := ProjectFromRecord(rec)
	require.NoError(t, err)
	require.NotNil(t, p.Color)
	require.Equal(t, "red", *p.Color)
}

func TestPersonFromRecord(t *testing.T) {
	rec := personRecord(7)
	rec["time_zone"] = "America/Chicago"
	rec["can_ping"] = true
	rec["company"] = map[string]any{"id": float64(3), "name": "Acme"}

	p, err := PersonFromRecord(rec)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", p.EmailAddress)
	require.True(t, p.Admin)
	require.NotNil(t, p.TimeZone)
	require.Equal(t, "America/Chicago", *p.TimeZone)
	require.NotNil(t, p.CanPing)
	require.True(t, *p.CanPing)
	require.Nil(t, p.CanManagePeople)
	require.Equal(t, "Acme", p.Company["name"])
}

func TestTodoListFromRecord_ParentDerivation(t *testing.T) {
	l, err := TodoListFromRecord(todoListRecord(9))
	require.NoError(t, err)
	require.NotNil(t, l.ParentID)
	require.Equal(t, int64(55), *l.ParentID)
	require.NotNil(t, l.ParentType)
	require.Equal(t, "Project", *l.ParentType)
}

func TestTodoListFromRecord_AbsentParent(t *testing.T) {
	rec := todoListRecord(9)
	delete(rec, "parent")

	l, err := TodoListFromRecord(rec)
	require.NoError(t, err)
	require.Nil(t, l.ParentID)
	require.Nil(t, l.ParentType)
}

func TestTodoItemFromRecord_AssigneeDerivation(t *testing.T) {
	rec := todoItemRecord(31)
	rec["assignees"] = []any{
		map[string]any{"id": float64(7), "name": "A"},
		map[string]any{"id": float64(9), "name": "B"},
	}

	item, err := TodoItemFromRecord(rec)
	require.NoError(t, err)
	require.Equal(t, []string{"7", "9"}, item.AssigneeIDs)
}

func TestTodoItemFromRecord_NoAssignees(t *testing.T) {
	rec := todoItemRecord(31)
	delete(rec, "assignees")

	item, err := TodoItemFromRecord(rec)
	require.NoError(t, err)
	require.Empty(t, item.AssigneeIDs)
	require.NotNil(t, item.Assignees)
}

func TestTodoItemFromRecord_Dates(t *testing.T) {
	rec := todoItemRecord(31)
	rec["starts_on"] = "2024-06-01"
	rec["due_on"] = "2024-06-15"

	item, err := TodoItemFromRecord(rec)
	require.NoError(t, err)
	require.NotNil(t, item.StartsOn)
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *item.StartsOn)
	require.NotNil(t, item.DueOn)
	require.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *item.DueOn)
}

func TestMissingRequiredField(t *testing.T) {
	rec := projectRecord(1)
	delete(rec, "name")

	_, err := ProjectFromRecord(rec)
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "name", fieldErr.Field)
	require.Equal(t, KindProject, fieldErr.Kind)
	require.Equal(t, int64(1), fieldErr.ID)
	require.Contains(t, err.Error(), `missing required field "name"`)
}

func TestUnparsableTimestamp(t *testing.T) {
	rec := personRecord(7)
	rec["created_at"] = "yesterday"

	_, err := PersonFromRecord(rec)
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "created_at", fieldErr.Field)
}

func TestEmptyTimestamp(t *testing.T) {
	rec := personRecord(7)
	rec["created_at"] = ""

	_, err := PersonFromRecord(rec)
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "created_at", fieldErr.Field)
}

func TestUnknownFieldsIgnored(t *testing.T) {
	rec := personRecord(7)
	rec["favorite_color"] = "teal"

	_, err := PersonFromRecord(rec)
	require.NoError(t, err)
}

func TestConversionIsPure(t *testing.T) {
	rec := todoItemRecord(31)
	first, err := TodoItemFromRecord(rec)
	require.NoError(t, err)
	second, err := TodoItemFromRecord(rec)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestTodoItemActive(t *testing.T) {
	item := &TodoItem{Completed: true}
	require.False(t, item.Active())

	item = &TodoItem{Status: StatusTrashed}
	require.False(t, item.Active())

	item = &TodoItem{Status: "active"}
	require.True(t, item.Active())
}

func TestTodoItemParentTitle(t *testing.T) {
	item := &TodoItem{Parent: map[string]any{"title": "Backend"}}
	require.Equal(t, "Backend", item.ParentTitle())

	item = &TodoItem{}
	require.Equal(t, "Unknown", item.ParentTitle())
}
