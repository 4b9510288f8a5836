package model

import "time"

// TodoList represents a to-do list inside a project.
type TodoList struct {
	ID               int64          `json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	ParentID         *int64         `json:"parent_id,omitempty"`
	ParentType       *string        `json:"parent_type,omitempty"`
	Status           string         `json:"status"`
	VisibleToClients bool           `json:"visible_to_clients"`
	Title            string         `json:"title"`
	InheritsStatus   bool           `json:"inherits_status"`
	Type             string         `json:"type"`
	URL              string         `json:"url"`
	AppURL           string         `json:"app_url"`
	BookmarkURL      string         `json:"bookmark_url"`
	SubscriptionURL  string         `json:"subscription_url"`
	CommentsCount    int64          `json:"comments_count"`
	CommentsURL      string         `json:"comments_url"`
	Position         int64          `json:"position"`
	Parent           map[string]any `json:"parent,omitempty"`
	Bucket           map[string]any `json:"bucket,omitempty"`
	Creator          map[string]any `json:"creator,omitempty"`
	Description      string         `json:"description"`
	Completed        bool           `json:"completed"`
	CompletedRatio   string         `json:"completed_ratio"`
	Name             string         `json:"name"`
	TodosURL         string         `json:"todos_url"`
	GroupsURL        string         `json:"groups_url"`
	AppTodosURL      string         `json:"app_todos_url"`
}

// parentRef derives the parent id and kind from a nested parent map.
// An absent parent leaves both nil.
func parentRef(r *reader) (*int64, *string) {
	parent := r.dict("parent")
	if parent == nil {
		return nil, nil
	}
	var id *int64
	if n, ok := asInt64(parent["id"]); ok {
		id = &n
	}
	var typ *string
	if s, ok := parent["type"].(string); ok {
		typ = &s
	}
	return id, typ
}

// TodoListFromRecord converts a raw to-do list record into a TodoList.
func TodoListFromRecord(rec Record) (*TodoList, error) {
	r := newReader(KindTodoList, rec)
	parentID, parentType := parentRef(r)
	l := &TodoList{
		ID:               r.id(),
		CreatedAt:        r.timestamp("created_at"),
		UpdatedAt:        r.timestamp("updated_at"),
		ParentID:         parentID,
		ParentType:       parentType,
		Status:           r.str("status"),
		VisibleToClients: r.boolean("visible_to_clients"),
		Title:            r.str("title"),
		InheritsStatus:   r.boolean("inherits_status"),
		Type:             r.str("type"),
		URL:              r.str("url"),
		AppURL:           r.str("app_url"),
		BookmarkURL:      r.str("bookmark_url"),
		SubscriptionURL:  r.str("subscription_url"),
		CommentsCount:    r.integer("comments_count"),
		CommentsURL:      r.str("comments_url"),
		Position:         r.integer("position"),
		Parent:           r.dict("parent"),
		Bucket:           r.dict("bucket"),
		Creator:          r.dict("creator"),
		Description:      r.str("description"),
		Completed:        r.boolean("completed"),
		CompletedRatio:   r.str("completed_ratio"),
		Name:             r.str("name"),
		TodosURL:         r.str("todos_url"),
		GroupsURL:        r.str("groups_url"),
		AppTodosURL:      r.str("app_todos_url"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return l, nil
}
