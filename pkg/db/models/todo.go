package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Todo is a task owned by one organization.
type Todo struct {
	ID             uint     `gorm:"primaryKey"                                json:"id"`
	OrganizationID string   `gorm:"type:text;not null;index:idx_todo_org"     json:"organization_id"`
	Text           string   `gorm:"type:text;not null"                        json:"text"`
	Completed      bool     `gorm:"not null"                                  json:"completed"`
	Status         string   `gorm:"type:text;not null;index:idx_todo_status"  json:"status"`
	Priority       string   `gorm:"type:text;not null"                        json:"priority"`
	Label          string   `gorm:"type:text;not null"                        json:"label"`
	Tracking       Tracking `gorm:"type:jsonb"                                json:"tracking"`

	CreatedAt time.Time `gorm:"index:idx_todo_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tracking is the JSON document stored alongside a todo. UTM parameters
// live under the "utms" key.
type Tracking struct {
	UTMs map[string]string `json:"utms,omitempty"`
}

func (t Tracking) IsZero() bool {
	return len(t.UTMs) == 0
}

// Value stores an empty document as NULL so JSON functions never see
// malformed input.
func (t Tracking) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tracking: %w", err)
	}
	return string(data), nil
}

func (t *Tracking) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*t = Tracking{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported tracking type %T", src)
	}
	if len(data) == 0 {
		*t = Tracking{}
		return nil
	}
	return json.Unmarshal(data, t)
}
