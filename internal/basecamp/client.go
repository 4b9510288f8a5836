package basecamp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/cfmeyers/tenzing/internal/model"
)

const baseURLFormat = "https://3.basecampapi.com/%s"

// Client talks to the Basecamp 4 API. All responses are returned as raw
// attribute bags; conversion to typed records is the caller's job.
type Client struct {
	rc *resty.Client
}

// New creates a Client for the given account using a bearer access token.
func New(accountID, accessToken string) *Client {
	rc := resty.New().
		SetBaseURL(fmt.Sprintf(baseURLFormat, accountID)).
		SetAuthToken(accessToken).
		SetHeader("User-Agent", "tenzing (https://github.com/cfmeyers/tenzing)")
	return &Client{rc: rc}
}

// NewWithBaseURL creates a Client against an explicit base URL. Used by
// tests to point at a local server.
func NewWithBaseURL(baseURL, accessToken string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(accessToken)
	return &Client{rc: rc}
}

func (c *Client) get(ctx context.Context, path string, out any) (*resty.Response, error) {
	return c.rc.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", uuid.NewString()).
		SetResult(out).
		Get(path)
}

// ListProjects returns every active project in the account.
func (c *Client) ListProjects(ctx context.Context) ([]model.Record, error) {
	var projects []model.Record
	resp, err := c.get(ctx, "/projects.json", &projects)
	if err != nil {
		return nil, errors.Wrap(err, "list projects")
	}
	if resp.IsError() {
		return nil, errors.Errorf("list projects: %s", resp.Status())
	}
	return projects, nil
}

// GetProject returns the project with the given id, or nil when the
// remote has no such project.
func (c *Client) GetProject(ctx context.Context, id int64) (model.Record, error) {
	var project model.Record
	resp, err := c.get(ctx, fmt.Sprintf("/projects/%d.json", id), &project)
	if err != nil {
		return nil, errors.Wrapf(err, "get project %d", id)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		return nil, errors.Errorf("get project %d: %s", id, resp.Status())
	}
	return project, nil
}

// ListPeople returns every person visible to the authenticated user.
func (c *Client) ListPeople(ctx context.Context) ([]model.Record, error) {
	var people []model.Record
	resp, err := c.get(ctx, "/people.json", &people)
	if err != nil {
		return nil, errors.Wrap(err, "list people")
	}
	if resp.IsError() {
		return nil, errors.Errorf("list people: %s", resp.Status())
	}
	return people, nil
}

// ListTodoLists returns the to-do lists of a project. The project's dock
// names the todoset that owns the lists.
func (c *Client) ListTodoLists(ctx context.Context, project model.Record) ([]model.Record, error) {
	projectID := project.ID()
	todosetID, err := dockEntryID(project, "todoset")
	if err != nil {
		return nil, errors.Wrapf(err, "project %d", projectID)
	}

	var lists []model.Record
	path := fmt.Sprintf("/buckets/%d/todosets/%d/todolists.json", projectID, todosetID)
	resp, err := c.get(ctx, path, &lists)
	if err != nil {
		return nil, errors.Wrapf(err, "list todolists for project %d", projectID)
	}
	if resp.IsError() {
		return nil, errors.Errorf("list todolists for project %d: %s", projectID, resp.Status())
	}
	return lists, nil
}

// ListTodoItems returns the to-dos of a to-do list. The list's bucket map
// names the project that owns it.
func (c *Client) ListTodoItems(ctx context.Context, list model.Record) ([]model.Record, error) {
	listID := list.ID()
	bucketID, err := bucketID(list)
	if err != nil {
		return nil, errors.Wrapf(err, "todolist %d", listID)
	}

	var items []model.Record
	path := fmt.Sprintf("/buckets/%d/todolists/%d/todos.json", bucketID, listID)
	resp, err := c.get(ctx, path, &items)
	if err != nil {
		return nil, errors.Wrapf(err, "list todos for todolist %d", listID)
	}
	if resp.IsError() {
		return nil, errors.Errorf("list todos for todolist %d: %s", listID, resp.Status())
	}
	return items, nil
}

// CreateTodoItem creates a to-do on the remote and returns its record.
func (c *Client) CreateTodoItem(ctx context.Context, projectID, todolistID int64, title, body, assigneeID string) (model.Record, error) {
	payload := map[string]any{
		"content":     title,
		"description": body,
	}
	if assigneeID != "" {
		payload["assignee_ids"] = []string{assigneeID}
	}

	var created model.Record
	path := fmt.Sprintf("/buckets/%d/todolists/%d/todos.json", projectID, todolistID)
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-Id", uuid.NewString()).
		SetBody(payload).
		SetResult(&created).
		Post(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create todo in todolist %d", todolistID)
	}
	if resp.IsError() {
		return nil, errors.Errorf("create todo in todolist %d: %s", todolistID, resp.Status())
	}
	return created, nil
}
