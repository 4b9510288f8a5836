package store

import "fmt"

// migrate runs all schema migrations. Safe to call on every open.
func (s *Store) migrate() error {
	migrations := []string{
		migrationCreateProjects,
		migrationCreatePeople,
		migrationCreateTodoLists,
		migrationCreateTodoItems,
		migrationCreateCurrentTodoHistory,
	}

	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const migrationCreateProjects = `
CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    status TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    purpose TEXT NOT NULL,
    clients_enabled INTEGER NOT NULL,
    timesheet_enabled INTEGER NOT NULL,
    color TEXT,
    bookmark_url TEXT NOT NULL,
    url TEXT NOT NULL,
    app_url TEXT NOT NULL,
    dock TEXT,
    bookmarked INTEGER NOT NULL
);
`

const migrationCreatePeople = `
CREATE TABLE IF NOT EXISTS people (
    id INTEGER PRIMARY KEY,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    name TEXT NOT NULL,
    email_address TEXT NOT NULL,
    admin INTEGER NOT NULL,
    company TEXT,
    attachable_sgid TEXT,
    personable_type TEXT,
    owner INTEGER,
    client INTEGER,
    employee INTEGER,
    time_zone TEXT,
    avatar_url TEXT,
    can_ping INTEGER,
    can_manage_projects INTEGER,
    can_manage_people INTEGER,
    can_access_timesheet INTEGER
);
`

const migrationCreateTodoLists = `
CREATE TABLE IF NOT EXISTS todolists (
    id INTEGER PRIMARY KEY,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    parent_id INTEGER,
    parent_type TEXT,
    status TEXT NOT NULL,
    visible_to_clients INTEGER NOT NULL,
    title TEXT NOT NULL,
    inherits_status INTEGER NOT NULL,
    type TEXT NOT NULL,
    url TEXT NOT NULL,
    app_url TEXT NOT NULL,
    bookmark_url TEXT NOT NULL,
    subscription_url TEXT NOT NULL,
    comments_count INTEGER NOT NULL,
    comments_url TEXT NOT NULL,
    position INTEGER NOT NULL,
    parent TEXT,
    bucket TEXT,
    creator TEXT,
    description TEXT NOT NULL,
    completed INTEGER NOT NULL,
    completed_ratio TEXT NOT NULL,
    name TEXT NOT NULL,
    todos_url TEXT NOT NULL,
    groups_url TEXT NOT NULL,
    app_todos_url TEXT NOT NULL
);
`

const migrationCreateTodoItems = `
CREATE TABLE IF NOT EXISTS todoitems (
    id INTEGER PRIMARY KEY,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    parent_id INTEGER,
    parent_type TEXT,
    status TEXT NOT NULL,
    visible_to_clients INTEGER NOT NULL,
    title TEXT NOT NULL,
    inherits_status INTEGER NOT NULL,
    type TEXT NOT NULL,
    url TEXT NOT NULL,
    app_url TEXT NOT NULL,
    bookmark_url TEXT NOT NULL,
    subscription_url TEXT NOT NULL,
    comments_count INTEGER NOT NULL,
    comments_url TEXT NOT NULL,
    position INTEGER NOT NULL,
    parent TEXT,
    bucket TEXT,
    creator TEXT,
    description TEXT NOT NULL,
    completed INTEGER NOT NULL,
    content TEXT NOT NULL,
    starts_on TEXT,
    due_on TEXT,
    assignees TEXT,
    assignee_ids TEXT,
    completion_subscribers TEXT,
    completion_url TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todoitems_parent ON todoitems(parent_id);
`

const migrationCreateCurrentTodoHistory = `
CREATE TABLE IF NOT EXISTS current_todo_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    todo_id INTEGER NOT NULL,
    selected_at TEXT NOT NULL
);
`
