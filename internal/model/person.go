package model

import "time"

// Person represents someone with access to the Basecamp account.
type Person struct {
	ID                 int64          `json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	Name               string         `json:"name"`
	EmailAddress       string         `json:"email_address"`
	Admin              bool           `json:"admin"`
	Company            map[string]any `json:"company,omitempty"`
	AttachableSGID     *string        `json:"attachable_sgid,omitempty"`
	PersonableType     *string        `json:"personable_type,omitempty"`
	Owner              *bool          `json:"owner,omitempty"`
	Client             *bool          `json:"client,omitempty"`
	Employee           *bool          `json:"employee,omitempty"`
	TimeZone           *string        `json:"time_zone,omitempty"`
	AvatarURL          *string        `json:"avatar_url,omitempty"`
	CanPing            *bool          `json:"can_ping,omitempty"`
	CanManageProjects  *bool          `json:"can_manage_projects,omitempty"`
	CanManagePeople    *bool          `json:"can_manage_people,omitempty"`
	CanAccessTimesheet *bool          `json:"can_access_timesheet,omitempty"`
}

// PersonFromRecord converts a raw person record into a Person.
func PersonFromRecord(rec Record) (*Person, error) {
	r := newReader(KindPerson, rec)
	p := &Person{
		ID:                 r.id(),
		CreatedAt:          r.timestamp("created_at"),
		UpdatedAt:          r.timestamp("updated_at"),
		Name:               r.str("name"),
		EmailAddress:       r.str("email_address"),
		Admin:              r.boolean("admin"),
		Company:            r.dict("company"),
		AttachableSGID:     r.optStr("attachable_sgid"),
		PersonableType:     r.optStr("personable_type"),
		Owner:              r.optBool("owner"),
		Client:             r.optBool("client"),
		Employee:           r.optBool("employee"),
		TimeZone:           r.optStr("time_zone"),
		AvatarURL:          r.optStr("avatar_url"),
		CanPing:            r.optBool("can_ping"),
		CanManageProjects:  r.optBool("can_manage_projects"),
		CanManagePeople:    r.optBool("can_manage_people"),
		CanAccessTimesheet: r.optBool("can_access_timesheet"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}
