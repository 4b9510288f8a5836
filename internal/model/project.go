package model

import "time"

// Project represents a Basecamp project.
type Project struct {
	ID               int64            `json:"id"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	Status           string           `json:"status"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Purpose          string           `json:"purpose"`
	ClientsEnabled   bool             `json:"clients_enabled"`
	TimesheetEnabled bool             `json:"timesheet_enabled"`
	Color            *string          `json:"color,omitempty"`
	BookmarkURL      string           `json:"bookmark_url"`
	URL              string           `json:"url"`
	AppURL           string           `json:"app_url"`
	Dock             []map[string]any `json:"dock"`
	Bookmarked       bool             `json:"bookmarked"`
}

// ProjectFromRecord converts a raw project record into a Project.
func ProjectFromRecord(rec Record) (*Project, error) {
	r := newReader(KindProject, rec)
	p := &Project{
		ID:               r.id(),
		CreatedAt:        r.timestamp("created_at"),
		UpdatedAt:        r.timestamp("updated_at"),
		Status:           r.str("status"),
		Name:             r.str("name"),
		Description:      r.str("description"),
		Purpose:          r.str("purpose"),
		ClientsEnabled:   r.boolean("clients_enabled"),
		TimesheetEnabled: r.boolean("timesheet_enabled"),
		Color:            r.optStr("color"),
		BookmarkURL:      r.str("bookmark_url"),
		URL:              r.str("url"),
		AppURL:           r.str("app_url"),
		Dock:             r.dictSlice("dock"),
		Bookmarked:       r.boolean("bookmarked"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}
