package main

// Leader represents a "pimpinan": the responsible person an activity is
// scheduled under. Names are unique; Color is a display color (#RRGGBB).
type Leader struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	Color string `json:"color" gorm:"type:varchar(7);not null"`
}

// Activity is the core schedulable event. Dates are canonical ISO strings
// (YYYY-MM-DD), times are zero-padded 24-hour "HH:MM" strings; the conflict
// engine works over these string forms directly.
type Activity struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Date         string `json:"date" gorm:"type:varchar(10);index;not null"`
	StartTime    string `json:"start_time" gorm:"type:varchar(5);not null"`
	EndTime      string `json:"end_time" gorm:"type:varchar(5);not null"`
	Description  string `json:"description"`
	Venue        string `json:"venue"`
	LeaderID     *uint  `json:"leader_id" gorm:"index"` // nullable: "unassigned" is a valid state after leader deletion
	Participants string `json:"participants"`           // comma-separated free text
	InputDate    string `json:"input_date" gorm:"type:varchar(10)"`
	InputTime    string `json:"input_time" gorm:"type:varchar(5)"`
	ContactName  string `json:"contact_name"`
	ContactInfo  string `json:"contact_info"`

	Leader *Leader `gorm:"foreignKey:LeaderID" json:"leader,omitempty"`
}

// ActivityDetail is the read-model returned by list/get queries: an Activity
// joined with its leader's display fields. Kept distinct from the write-model
// so the denormalized columns never get persisted back.
type ActivityDetail struct {
	ID           uint   `json:"id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Description  string `json:"description"`
	Venue        string `json:"venue"`
	LeaderID     *uint  `json:"leader_id"`
	LeaderName   string `json:"leader_name"`
	LeaderColor  string `json:"leader_color"`
	Participants string `json:"participants"`
	InputDate    string `json:"input_date"`
	InputTime    string `json:"input_time"`
	ContactName  string `json:"contact_name"`
	ContactInfo  string `json:"contact_info"`
}
