package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/cfmeyers/tenzing/internal/model"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*model.Project, error) {
	var (
		p                    model.Project
		createdAt, updatedAt string
		color, dock          sql.NullString
	)
	err := row.Scan(&p.ID, &createdAt, &updatedAt, &p.Status, &p.Name,
		&p.Description, &p.Purpose, &p.ClientsEnabled, &p.TimesheetEnabled,
		&color, &p.BookmarkURL, &p.URL, &p.AppURL, &dock, &p.Bookmarked)
	if err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
		return nil, err
	}
	p.Color = strPtr(color)
	if err := decodeJSON(dock, &p.Dock); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProject returns the cached project or ErrNotFound.
func (s *Store) GetProject(id int64) (*model.Project, error) {
	query := "SELECT id, " + strings.Join(projectCols, ", ") + " FROM projects WHERE id = ?"
	p, err := scanProject(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return p, nil
}

// ListProjects returns every cached project ordered by name.
func (s *Store) ListProjects() ([]*model.Project, error) {
	query := "SELECT id, " + strings.Join(projectCols, ", ") + " FROM projects ORDER BY name"
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func scanPerson(row scanner) (*model.Person, error) {
	var (
		p                                      model.Person
		createdAt, updatedAt                   string
		company, sgid, personable              sql.NullString
		owner, client, employee                sql.NullBool
		timeZone, avatarURL                    sql.NullString
		canPing, canProjects, canPeople, canTS sql.NullBool
	)
	err := row.Scan(&p.ID, &createdAt, &updatedAt, &p.Name, &p.EmailAddress,
		&p.Admin, &company, &sgid, &personable, &owner, &client, &employee,
		&timeZone, &avatarURL, &canPing, &canProjects, &canPeople, &canTS)
	if err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
		return nil, err
	}
	if err := decodeJSON(company, &p.Company); err != nil {
		return nil, err
	}
	p.AttachableSGID = strPtr(sgid)
	p.PersonableType = strPtr(personable)
	p.Owner = boolPtr(owner)
	p.Client = boolPtr(client)
	p.Employee = boolPtr(employee)
	p.TimeZone = strPtr(timeZone)
	p.AvatarURL = strPtr(avatarURL)
	p.CanPing = boolPtr(canPing)
	p.CanManageProjects = boolPtr(canProjects)
	p.CanManagePeople = boolPtr(canPeople)
	p.CanAccessTimesheet = boolPtr(canTS)
	return &p, nil
}

// GetPerson returns the cached person or ErrNotFound.
func (s *Store) GetPerson(id int64) (*model.Person, error) {
	query := "SELECT id, " + strings.Join(personCols, ", ") + " FROM people WHERE id = ?"
	p, err := scanPerson(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get person %d: %w", id, err)
	}
	return p, nil
}

// ListPeople returns every cached person ordered by name.
func (s *Store) ListPeople() ([]*model.Person, error) {
	query := "SELECT id, " + strings.Join(personCols, ", ") + " FROM people ORDER BY name"
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []*model.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("list people: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

func scanTodoList(row scanner) (*model.TodoList, error) {
	var (
		l                       model.TodoList
		createdAt, updatedAt    string
		parentID                sql.NullInt64
		parentType              sql.NullString
		parent, bucket, creator sql.NullString
	)
	err := row.Scan(&l.ID, &createdAt, &updatedAt, &parentID, &parentType,
		&l.Status, &l.VisibleToClients, &l.Title, &l.InheritsStatus, &l.Type,
		&l.URL, &l.AppURL, &l.BookmarkURL, &l.SubscriptionURL,
		&l.CommentsCount, &l.CommentsURL, &l.Position, &parent, &bucket,
		&creator, &l.Description, &l.Completed, &l.CompletedRatio, &l.Name,
		&l.TodosURL, &l.GroupsURL, &l.AppTodosURL)
	if err != nil {
		return nil, err
	}
	if l.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
		return nil, err
	}
	l.ParentID = intPtr(parentID)
	l.ParentType = strPtr(parentType)
	if err := decodeJSON(parent, &l.Parent); err != nil {
		return nil, err
	}
	if err := decodeJSON(bucket, &l.Bucket); err != nil {
		return nil, err
	}
	if err := decodeJSON(creator, &l.Creator); err != nil {
		return nil, err
	}
	return &l, nil
}

// GetTodoList returns the cached to-do list or ErrNotFound.
func (s *Store) GetTodoList(id int64) (*model.TodoList, error) {
	query := "SELECT id, " + strings.Join(todoListCols, ", ") + " FROM todolists WHERE id = ?"
	l, err := scanTodoList(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get todolist %d: %w", id, err)
	}
	return l, nil
}

func scanTodoItem(row scanner) (*model.TodoItem, error) {
	var (
		t                                  model.TodoItem
		createdAt, updatedAt               string
		parentID                           sql.NullInt64
		parentType                         sql.NullString
		parent, bucket, creator            sql.NullString
		startsOn, dueOn                    sql.NullString
		assignees, assigneeIDs, completion sql.NullString
	)
	err := row.Scan(&t.ID, &createdAt, &updatedAt, &parentID, &parentType,
		&t.Status, &t.VisibleToClients, &t.Title, &t.InheritsStatus, &t.Type,
		&t.URL, &t.AppURL, &t.BookmarkURL, &t.SubscriptionURL,
		&t.CommentsCount, &t.CommentsURL, &t.Position, &parent, &bucket,
		&creator, &t.Description, &t.Completed, &t.Content, &startsOn, &dueOn,
		&assignees, &assigneeIDs, &completion, &t.CompletionURL)
	if err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTimeText(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimeText(updatedAt); err != nil {
		return nil, err
	}
	t.ParentID = intPtr(parentID)
	t.ParentType = strPtr(parentType)
	if err := decodeJSON(parent, &t.Parent); err != nil {
		return nil, err
	}
	if err := decodeJSON(bucket, &t.Bucket); err != nil {
		return nil, err
	}
	if err := decodeJSON(creator, &t.Creator); err != nil {
		return nil, err
	}
	if t.StartsOn, err = datePtr(startsOn); err != nil {
		return nil, err
	}
	if t.DueOn, err = datePtr(dueOn); err != nil {
		return nil, err
	}
	if err := decodeJSON(assignees, &t.Assignees); err != nil {
		return nil, err
	}
	if err := decodeJSON(assigneeIDs, &t.AssigneeIDs); err != nil {
		return nil, err
	}
	if err := decodeJSON(completion, &t.CompletionSubscribers); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTodoItem returns the cached to-do item or ErrNotFound.
func (s *Store) GetTodoItem(id int64) (*model.TodoItem, error) {
	query := "SELECT id, " + strings.Join(todoItemCols, ", ") + " FROM todoitems WHERE id = ?"
	t, err := scanTodoItem(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get todoitem %d: %w", id, err)
	}
	return t, nil
}

// TodoItemsByAssignee returns every cached to-do item whose derived
// assignee id list contains userID. No ordering is promised.
func (s *Store) TodoItemsByAssignee(userID string) ([]*model.TodoItem, error) {
	query := "SELECT id, " + strings.Join(todoItemCols, ", ") +
		` FROM todoitems WHERE assignee_ids LIKE ?`
	rows, err := s.db.Query(query, `%"`+userID+`"%`)
	if err != nil {
		return nil, fmt.Errorf("todoitems by assignee %s: %w", userID, err)
	}
	defer rows.Close()

	var items []*model.TodoItem
	for rows.Next() {
		t, err := scanTodoItem(rows)
		if err != nil {
			return nil, fmt.Errorf("todoitems by assignee %s: %w", userID, err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
