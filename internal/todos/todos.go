// Package todos answers "what should this user work on".
package todos

import (
	"context"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/cfmeyers/tenzing/internal/model"
	"github.com/cfmeyers/tenzing/internal/store"
)

// Source selects where a query reads from.
type Source int

const (
	SourceCache Source = iota
	SourceRemote
)

// Client is the slice of the Basecamp client a remote query needs.
type Client interface {
	GetProject(ctx context.Context, id int64) (model.Record, error)
	ListTodoLists(ctx context.Context, project model.Record) ([]model.Record, error)
	ListTodoItems(ctx context.Context, list model.Record) ([]model.Record, error)
}

// Query holds the collaborators a todo lookup can read from.
type Query struct {
	Store  *store.Store
	Client Client

	// ProjectIDs scopes remote walks; ignored for cache reads.
	ProjectIDs []string
}

// ForUser returns every to-do item assigned to userID, read from the
// given source. Matching compares the derived string assignee ids.
func (q Query) ForUser(ctx context.Context, userID string, source Source) ([]*model.TodoItem, error) {
	if source == SourceRemote {
		return q.forUserRemote(ctx, userID)
	}
	return q.Store.TodoItemsByAssignee(userID)
}

func (q Query) forUserRemote(ctx context.Context, userID string) ([]*model.TodoItem, error) {
	var matched []*model.TodoItem
	for _, raw := range q.ProjectIDs {
		id, ok := parseID(raw)
		if !ok {
			log.Warn().Str("project_id", raw).Msg("configured project id is not an integer")
			continue
		}
		proj, err := q.Client.GetProject(ctx, id)
		if err != nil {
			return nil, err
		}
		if proj == nil {
			log.Warn().Int64("project_id", id).Msg("configured project not found on remote")
			continue
		}
		lists, err := q.Client.ListTodoLists(ctx, proj)
		if err != nil {
			return nil, err
		}
		for _, list := range lists {
			recs, err := q.Client.ListTodoItems(ctx, list)
			if err != nil {
				return nil, err
			}
			for _, rec := range recs {
				item, err := model.TodoItemFromRecord(rec)
				if err != nil {
					log.Err(err).Msg("skipping unconvertible todo record")
					continue
				}
				if item.AssignedTo(userID) {
					matched = append(matched, item)
				}
			}
		}
	}
	return matched, nil
}

// Active keeps only items that are neither completed nor trashed.
func Active(items []*model.TodoItem) []*model.TodoItem {
	kept := make([]*model.TodoItem, 0, len(items))
	for _, item := range items {
		if item.Active() {
			kept = append(kept, item)
		}
	}
	return kept
}

// SortByParentList orders items ascending by their parent to-do list's
// display name. The sort is stable, so items within a list keep their
// relative order.
func SortByParentList(items []*model.TodoItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ParentTitle() < items[j].ParentTitle()
	})
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil
}
