// Package sync pulls the full remote Basecamp state into the local store.
package sync

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/cfmeyers/tenzing/internal/model"
	"github.com/cfmeyers/tenzing/internal/store"
)

// API is the slice of the Basecamp client a refresh needs.
type API interface {
	ListProjects(ctx context.Context) ([]model.Record, error)
	GetProject(ctx context.Context, id int64) (model.Record, error)
	ListPeople(ctx context.Context) ([]model.Record, error)
	ListTodoLists(ctx context.Context, project model.Record) ([]model.Record, error)
	ListTodoItems(ctx context.Context, list model.Record) ([]model.Record, error)
}

// Result reports what one refresh wrote, which configured project ids did
// not resolve, and how many non-fatal fetch/convert failures were skipped.
type Result struct {
	People    store.UpsertResult
	Projects  store.UpsertResult
	TodoLists store.UpsertResult
	TodoItems store.UpsertResult

	SkippedProjects []string
	Skipped         int
}

// Refresh pulls people, projects, to-do lists, and to-do items from the
// remote and upserts them into the store. projectIDs, when non-empty,
// restricts which projects' to-do items are fetched; a configured project
// the account listing omits is fetched individually so its project, lists,
// and items are cached too.
//
// Each of the four upserts is its own transaction: a late failure never
// rolls back earlier, already-committed batches. A failure fetching or
// converting one project's lists or items is logged and skipped; the rest
// of the refresh continues.
func Refresh(ctx context.Context, api API, st *store.Store, projectIDs []string) (*Result, error) {
	res := &Result{}

	// 1. People.
	peopleRecs, err := api.ListPeople(ctx)
	if err != nil {
		return nil, err
	}
	people := convertAll(res, peopleRecs, model.PersonFromRecord)
	if res.People, err = st.UpsertPeople(people); err != nil {
		return nil, err
	}
	log.Info().Int("inserted", res.People.Inserted).Int("updated", res.People.Updated).Msg("refreshed people")

	// 2. Projects. Raw records are kept: the dock inside each one names
	// the todoset the lists hang off. Configured projects missing from
	// the listing are resolved here so the later steps treat them like
	// any other project.
	projectRecs, err := api.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	scopeIDs := resolveScope(ctx, api, res, &projectRecs, projectIDs)

	projects := convertAll(res, projectRecs, model.ProjectFromRecord)
	if res.Projects, err = st.UpsertProjects(projects); err != nil {
		return nil, err
	}
	log.Info().Int("inserted", res.Projects.Inserted).Int("updated", res.Projects.Updated).Msg("refreshed projects")

	// 3. To-do lists for every project.
	listsByProject := make(map[int64][]model.Record)
	var allListRecs []model.Record
	for _, proj := range projectRecs {
		lists, err := api.ListTodoLists(ctx, proj)
		if err != nil {
			log.Err(err).Int64("project_id", proj.ID()).Msg("skipping project todolists")
			res.Skipped++
			continue
		}
		listsByProject[proj.ID()] = lists
		allListRecs = append(allListRecs, lists...)
	}
	lists := convertAll(res, allListRecs, model.TodoListFromRecord)
	if res.TodoLists, err = st.UpsertTodoLists(lists); err != nil {
		return nil, err
	}
	log.Info().Int("inserted", res.TodoLists.Inserted).Int("updated", res.TodoLists.Updated).Msg("refreshed todolists")

	// 4. Scope the to-do item fetch.
	var scoped []model.Record
	if scopeIDs == nil {
		for _, proj := range projectRecs {
			scoped = append(scoped, listsByProject[proj.ID()]...)
		}
	} else {
		for _, id := range scopeIDs {
			scoped = append(scoped, listsByProject[id]...)
		}
	}

	// 5. To-do items.
	var itemRecs []model.Record
	for _, list := range scoped {
		items, err := api.ListTodoItems(ctx, list)
		if err != nil {
			log.Err(err).Int64("todolist_id", list.ID()).Msg("skipping todolist items")
			res.Skipped++
			continue
		}
		itemRecs = append(itemRecs, items...)
	}
	items := convertAll(res, itemRecs, model.TodoItemFromRecord)
	if res.TodoItems, err = st.UpsertTodoItems(items); err != nil {
		return nil, err
	}
	log.Info().Int("inserted", res.TodoItems.Inserted).Int("updated", res.TodoItems.Updated).Msg("refreshed todoitems")

	return res, nil
}

// resolveScope parses the configured project ids and fetches any project
// the account listing omitted, appending it to projectRecs. It returns the
// resolved ids, or nil when no filter is configured. Unresolvable ids are
// reported, not fatal; a fully unresolvable filter yields an empty,
// non-nil slice so nothing is fetched.
func resolveScope(ctx context.Context, api API, res *Result, projectRecs *[]model.Record, projectIDs []string) []int64 {
	if len(projectIDs) == 0 {
		return nil
	}

	fetched := make(map[int64]bool, len(*projectRecs))
	for _, proj := range *projectRecs {
		fetched[proj.ID()] = true
	}

	ids := make([]int64, 0, len(projectIDs))
	for _, raw := range projectIDs {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Warn().Str("project_id", raw).Msg("configured project id is not an integer")
			res.SkippedProjects = append(res.SkippedProjects, raw)
			continue
		}
		if !fetched[id] {
			proj, err := api.GetProject(ctx, id)
			if err != nil || proj == nil {
				log.Warn().Str("project_id", raw).Msg("configured project did not resolve")
				res.SkippedProjects = append(res.SkippedProjects, raw)
				continue
			}
			*projectRecs = append(*projectRecs, proj)
			fetched[id] = true
		}
		ids = append(ids, id)
	}
	return ids
}

// convertAll converts raw records, logging and skipping the ones that fail.
func convertAll[T any](res *Result, recs []model.Record, convert func(model.Record) (*T, error)) []*T {
	out := make([]*T, 0, len(recs))
	for _, rec := range recs {
		converted, err := convert(rec)
		if err != nil {
			log.Err(err).Msg("skipping unconvertible record")
			res.Skipped++
			continue
		}
		out = append(out, converted)
	}
	return out
}
