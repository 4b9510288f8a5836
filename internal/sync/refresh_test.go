package sync

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/cfmeyers/tenzing/internal/model"
	"github.com/cfmeyers/tenzing/internal/store"
)

type fakeAPI struct {
	people   []model.Record
	projects []model.Record
	lists    map[int64][]model.Record // project id -> lists
	items    map[int64][]model.Record // list id -> items

	// extra holds projects GetProject can resolve even though
	// ListProjects omits them.
	extra        map[int64]model.Record
	failListsFor map[int64]bool
}

func (f *fakeAPI) ListPeople(ctx context.Context) ([]model.Record, error) {
	return f.people, nil
}

func (f *fakeAPI) ListProjects(ctx context.Context) ([]model.Record, error) {
	return f.projects, nil
}

func (f *fakeAPI) GetProject(ctx context.Context, id int64) (model.Record, error) {
	for _, p := range f.projects {
		if p.ID() == id {
			return p, nil
		}
	}
	if p, ok := f.extra[id]; ok {
		return p, nil
	}
	return nil, nil
}

func (f *fakeAPI) ListTodoLists(ctx context.Context, project model.Record) ([]model.Record, error) {
	if f.failListsFor[project.ID()] {
		return nil, errors.New("boom")
	}
	return f.lists[project.ID()], nil
}

func (f *fakeAPI) ListTodoItems(ctx context.Context, list model.Record) ([]model.Record, error) {
	return f.items[list.ID()], nil
}

func baseRecord(id int64) model.Record {
	return model.Record{
		"id":         float64(id),
		"created_at": "2024-05-01T10:00:00Z",
		"updated_at": "2024-05-02T11:30:00Z",
	}
}

func recPerson(id int64, name string) model.Record {
	rec := baseRecord(id)
	rec["name"] = name
	rec["email_address"] = "someone@example.com"
	rec["admin"] = false
	return rec
}

func recProject(id int64, name string) model.Record {
	rec := baseRecord(id)
	rec["status"] = "active"
	rec["name"] = name
	rec["description"] = ""
	rec["purpose"] = "topic"
	rec["clients_enabled"] = false
	rec["timesheet_enabled"] = false
	rec["bookmark_url"] = "https://example.com/bookmark"
	rec["url"] = "https://example.com/project"
	rec["app_url"] = "https://example.com/app"
	rec["dock"] = []any{map[string]any{"id": float64(id * 100), "name": "todoset"}}
	rec["bookmarked"] = false
	return rec
}

func recList(id, projectID int64, title string) model.Record {
	rec := baseRecord(id)
	rec["status"] = "active"
	rec["visible_to_clients"] = false
	rec["title"] = title
	rec["inherits_status"] = true
	rec["type"] = "Todolist"
	rec["url"] = "https://example.com/list"
	rec["app_url"] = "https://example.com/list"
	rec["bookmark_url"] = "https://example.com/bookmark"
	rec["subscription_url"] = "https://example.com/sub"
	rec["comments_count"] = float64(0)
	rec["comments_url"] = "https://example.com/comments"
	rec["position"] = float64(1)
	rec["parent"] = map[string]any{"id": float64(projectID), "type": "Project"}
	rec["bucket"] = map[string]any{"id": float64(projectID), "name": "Bucket", "type": "Project"}
	rec["description"] = ""
	rec["completed"] = false
	rec["completed_ratio"] = "0/0"
	rec["name"] = title
	rec["todos_url"] = "https://example.com/todos"
	rec["groups_url"] = "https://example.com/groups"
	rec["app_todos_url"] = "https://example.com/todos"
	return rec
}

func recItem(id, listID int64, title string, assigneeIDs ...int64) model.Record {
	rec := baseRecord(id)
	rec["status"] = "active"
	rec["visible_to_clients"] = false
	rec["title"] = title
	rec["inherits_status"] = true
	rec["type"] = "Todo"
	rec["url"] = "https://example.com/todo"
	rec["app_url"] = "https://example.com/todo"
	rec["bookmark_url"] = "https://example.com/bookmark"
	rec["subscription_url"] = "https://example.com/sub"
	rec["comments_count"] = float64(0)
	rec["comments_url"] = "https://example.com/comments"
	rec["position"] = float64(1)
	rec["parent"] = map[string]any{"id": float64(listID), "type": "Todolist", "title": "List"}
	rec["bucket"] = map[string]any{"id": float64(1), "name": "Bucket", "type": "Project"}
	rec["description"] = ""
	rec["completed"] = false
	rec["content"] = title
	rec["completion_url"] = "https://example.com/completion"
	assignees := make([]any, len(assigneeIDs))
	for i, aid := range assigneeIDs {
		assignees[i] = map[string]any{"id": float64(aid), "name": "Someone"}
	}
	rec["assignees"] = assignees
	return rec
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		people: []model.Record{
			recPerson(7, "Ada Lovelace"),
			recPerson(9, "Grace Hopper"),
		},
		projects: []model.Record{
			recProject(1, "Alpha"),
			recProject(2, "Beta"),
			recProject(3, "Gamma"),
		},
		lists: map[int64][]model.Record{
			1: {recList(10, 1, "Alpha backlog")},
			2: {recList(20, 2, "Beta backlog")},
			3: {recList(30, 3, "Gamma backlog")},
		},
		items: map[int64][]model.Record{
			10: {recItem(100, 10, "Alpha task", 7)},
			20: {recItem(200, 20, "Beta task", 9)},
			30: {recItem(300, 30, "Gamma task", 7)},
		},
		failListsFor: map[int64]bool{},
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRefreshFull(t *testing.T) {
	api := newFakeAPI()
	st := newTestStore(t)

	res, err := Refresh(context.Background(), api, st, nil)
	require.NoError(t, err)

	require.Equal(t, 2, res.People.Inserted)
	require.Equal(t, 3, res.Projects.Inserted)
	require.Equal(t, 3, res.TodoLists.Inserted)
	require.Equal(t, 3, res.TodoItems.Inserted)
	require.Zero(t, res.Skipped)
	require.Empty(t, res.SkippedProjects)

	_, err = st.GetPerson(7)
	require.NoError(t, err)
	_, err = st.GetProject(2)
	require.NoError(t, err)
	_, err = st.GetTodoList(20)
	require.NoError(t, err)
	_, err = st.GetTodoItem(300)
	require.NoError(t, err)
}

func TestRefreshIdempotent(t *testing.T) {
	api := newFakeAPI()
	st := newTestStore(t)

	_, err := Refresh(context.Background(), api, st, nil)
	require.NoError(t, err)

	res, err := Refresh(context.Background(), api, st, nil)
	require.NoError(t, err)
	require.Zero(t, res.TodoItems.Inserted)
	require.Equal(t, 3, res.TodoItems.Updated)
}

func TestRefreshPartialFailureIsolation(t *testing.T) {
	api := newFakeAPI()
	api.failListsFor[2] = true
	st := newTestStore(t)

	res, err := Refresh(context.Background(), api, st, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.Skipped)

	// Alpha's and Gamma's lists survived Beta's failure.
	_, err = st.GetTodoList(10)
	require.NoError(t, err)
	_, err = st.GetTodoList(30)
	require.NoError(t, err)
	_, err = st.GetTodoList(20)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.GetTodoItem(100)
	require.NoError(t, err)
	_, err = st.GetTodoItem(300)
	require.NoError(t, err)
}

func TestRefreshScopedToConfiguredProjects(t *testing.T) {
	api := newFakeAPI()
	st := newTestStore(t)

	res, err := Refresh(context.Background(), api, st, []string{"1", "999", "bogus"})
	require.NoError(t, err)

	// Only Alpha's items were fetched; lists are always fetched in full.
	require.Equal(t, 1, res.TodoItems.Inserted)
	require.Equal(t, 3, res.TodoLists.Inserted)
	require.ElementsMatch(t, []string{"999", "bogus"}, res.SkippedProjects)

	_, err = st.GetTodoItem(100)
	require.NoError(t, err)
	_, err = st.GetTodoItem(200)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRefreshCachesIndividuallyResolvedProjects(t *testing.T) {
	api := newFakeAPI()
	// Delta is invisible to the account listing but resolvable by id.
	api.projects = api.projects[:2]
	api.extra = map[int64]model.Record{4: recProject(4, "Delta")}
	api.lists[4] = []model.Record{recList(40, 4, "Delta backlog")}
	api.items[40] = []model.Record{recItem(400, 40, "Delta task", 7)}
	st := newTestStore(t)

	res, err := Refresh(context.Background(), api, st, []string{"4"})
	require.NoError(t, err)
	require.Empty(t, res.SkippedProjects)

	// The resolved project is cached along with its lists and items,
	// never just the items.
	_, err = st.GetProject(4)
	require.NoError(t, err)
	_, err = st.GetTodoList(40)
	require.NoError(t, err)
	_, err = st.GetTodoItem(400)
	require.NoError(t, err)

	require.Equal(t, 3, res.Projects.Inserted)
	require.Equal(t, 3, res.TodoLists.Inserted)
	require.Equal(t, 1, res.TodoItems.Inserted)
}

func TestRefreshSkipsUnconvertibleRecords(t *testing.T) {
	api := newFakeAPI()
	broken := recPerson(11, "No Email")
	delete(broken, "email_address")
	api.people = append(api.people, broken)
	st := newTestStore(t)

	res, err := Refresh(context.Background(), api, st, nil)
	require.NoError(t, err)
	require.Equal(t, 2, res.People.Inserted)
	require.Equal(t, 1, res.Skipped)

	_, err = st.GetPerson(11)
	require.ErrorIs(t, err, store.ErrNotFound)
}
