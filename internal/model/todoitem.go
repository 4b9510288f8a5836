package model

import (
	"strconv"
	"time"
)

// StatusTrashed is the remote status of a to-do that was moved to the trash.
const StatusTrashed = "trashed"

// TodoItem represents a single to-do inside a to-do list.
type TodoItem struct {
	ID                    int64            `json:"id"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
	ParentID              *int64           `json:"parent_id,omitempty"`
	ParentType            *string          `json:"parent_type,omitempty"`
	Status                string           `json:"status"`
	VisibleToClients      bool             `json:"visible_to_clients"`
	Title                 string           `json:"title"`
	InheritsStatus        bool             `json:"inherits_status"`
	Type                  string           `json:"type"`
	URL                   string           `json:"url"`
	AppURL                string           `json:"app_url"`
	BookmarkURL           string           `json:"bookmark_url"`
	SubscriptionURL       string           `json:"subscription_url"`
	CommentsCount         int64            `json:"comments_count"`
	CommentsURL           string           `json:"comments_url"`
	Position              int64            `json:"position"`
	Parent                map[string]any   `json:"parent,omitempty"`
	Bucket                map[string]any   `json:"bucket,omitempty"`
	Creator               map[string]any   `json:"creator,omitempty"`
	Description           string           `json:"description"`
	Completed             bool             `json:"completed"`
	Content               string           `json:"content"`
	StartsOn              *time.Time       `json:"starts_on,omitempty"`
	DueOn                 *time.Time       `json:"due_on,omitempty"`
	Assignees             []map[string]any `json:"assignees"`
	AssigneeIDs           []string         `json:"assignee_ids"`
	CompletionSubscribers []map[string]any `json:"completion_subscribers"`
	CompletionURL         string           `json:"completion_url"`
}

// Active reports whether the item is neither completed nor trashed.
func (t *TodoItem) Active() bool {
	return !t.Completed && t.Status != StatusTrashed
}

// AssignedTo reports whether userID appears in the derived assignee list.
func (t *TodoItem) AssignedTo(userID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ParentTitle returns the display name of the item's parent to-do list,
// or "Unknown" when the parent map is absent.
func (t *TodoItem) ParentTitle() string {
	if t.Parent != nil {
		if title, ok := t.Parent["title"].(string); ok && title != "" {
			return title
		}
	}
	return "Unknown"
}

// assigneeIDs derives the string form of each assignee's id.
func assigneeIDs(assignees []map[string]any) []string {
	ids := make([]string, 0, len(assignees))
	for _, a := range assignees {
		if n, ok := asInt64(a["id"]); ok {
			ids = append(ids, strconv.FormatInt(n, 10))
		}
	}
	return ids
}

// TodoItemFromRecord converts a raw to-do record into a TodoItem.
func TodoItemFromRecord(rec Record) (*TodoItem, error) {
	r := newReader(KindTodoItem, rec)
	parentID, parentType := parentRef(r)
	assignees := r.dictSlice("assignees")
	if assignees == nil {
		assignees = []map[string]any{}
	}
	t := &TodoItem{
		ID:                    r.id(),
		CreatedAt:             r.timestamp("created_at"),
		UpdatedAt:             r.timestamp("updated_at"),
		ParentID:              parentID,
		ParentType:            parentType,
		Status:                r.str("status"),
		VisibleToClients:      r.boolean("visible_to_clients"),
		Title:                 r.str("title"),
		InheritsStatus:        r.boolean("inherits_status"),
		Type:                  r.str("type"),
		URL:                   r.str("url"),
		AppURL:                r.str("app_url"),
		BookmarkURL:           r.str("bookmark_url"),
		SubscriptionURL:       r.str("subscription_url"),
		CommentsCount:         r.integer("comments_count"),
		CommentsURL:           r.str("comments_url"),
		Position:              r.integer("position"),
		Parent:                r.dict("parent"),
		Bucket:                r.dict("bucket"),
		Creator:               r.dict("creator"),
		Description:           r.str("description"),
		Completed:             r.boolean("completed"),
		Content:               r.str("content"),
		StartsOn:              r.optDate("starts_on"),
		DueOn:                 r.optDate("due_on"),
		Assignees:             assignees,
		AssigneeIDs:           assigneeIDs(assignees),
		CompletionSubscribers: r.dictSlice("completion_subscribers"),
		CompletionURL:         r.str("completion_url"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return t, nil
}
