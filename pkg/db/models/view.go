package models

import (
	"time"
)

// View is a named, saved filter list of an organization.
type View struct {
	ID             uint   `gorm:"primaryKey"                                      json:"id"`
	OrganizationID string `gorm:"type:text;not null;uniqueIndex:idx_view_org_name" json:"organization_id"`
	Name           string `gorm:"type:text;not null;uniqueIndex:idx_view_org_name" json:"name"`
	Filters        string `gorm:"type:text;not null"                              json:"filters"` // serialized filter list
	Description    string `gorm:"type:text"                                       json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
