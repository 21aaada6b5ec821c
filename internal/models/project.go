package models

import (
	"time"

	"gorm.io/datatypes"
)

type ProjectStatus string

const (
	ProjectStatusPlanned    ProjectStatus = "Planned"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusOnHold     ProjectStatus = "On Hold"
	ProjectStatusDone       ProjectStatus = "Done"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusInProgress, ProjectStatusOnHold, ProjectStatusDone:
		return true
	}
	return false
}

type Project struct {
	ID              uint64          `gorm:"primarykey" json:"id"`
	Name            string          `gorm:"type:varchar(120);not null" json:"name"`
	ClientID        *uint64         `gorm:"index" json:"client_id"`
	BuildingID      *uint64         `gorm:"index" json:"building_id"`
	Description     string          `gorm:"type:text" json:"description"`
	Status          ProjectStatus   `gorm:"type:varchar(50);not null;default:'Planned';index" json:"status"`
	DueDate         *datatypes.Date `gorm:"index" json:"due_date"`
	ProposalSent    bool            `gorm:"column:m1_proposal_sent;not null;default:false" json:"m1"`
	SurveyCompleted bool            `gorm:"column:m2_survey_completed;not null;default:false" json:"m2"`
	AsBuiltFinished bool            `gorm:"column:m3_as_built_finished;not null;default:false" json:"m3"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relations
	Client      *Client             `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Building    *Building           `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	Events      []Event             `gorm:"foreignKey:ProjectID" json:"-"`
	Assignments []ProjectAssignment `gorm:"foreignKey:ProjectID" json:"-"`
}

// IsOverdue reports whether the project is past its due date and not done.
// today is truncated to a calendar date before comparing.
func (p Project) IsOverdue(today time.Time) bool {
	if p.DueDate == nil || p.Status == ProjectStatusDone {
		return false
	}
	return calendarDay(DateOf(p.DueDate)).Before(calendarDay(today))
}

// DaysUntilDue returns whole days from today until the due date, or nil when
// there is no due date or the project is done.
func (p Project) DaysUntilDue(today time.Time) *int {
	if p.DueDate == nil || p.Status == ProjectStatusDone {
		return nil
	}
	days := int(calendarDay(DateOf(p.DueDate)).Sub(calendarDay(today)).Hours() / 24)
	return &days
}

// calendarDay keeps only the year, month and day of t, at UTC midnight.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MilestoneDone reports the state of one milestone.
func (p Project) MilestoneDone(m Milestone) bool {
	switch m {
	case MilestoneProposal:
		return p.ProposalSent
	case MilestoneSurvey:
		return p.SurveyCompleted
	case MilestoneAsBuilt:
		return p.AsBuiltFinished
	}
	return false
}

// DateOf converts a nullable date column to a time in the date's own location.
func DateOf(d *datatypes.Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	t := time.Time(*d)
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.Local)
}

// NewDate builds a date column value from t.
func NewDate(t time.Time) *datatypes.Date {
	y, m, d := t.Date()
	date := datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.Local))
	return &date
}
