package models

import "strings"

// Milestone identifies one of the three fixed project tasks.
type Milestone string

const (
	MilestoneProposal Milestone = "M1"
	MilestoneSurvey   Milestone = "M2"
	MilestoneAsBuilt  Milestone = "M3"
)

// Milestones lists every milestone in display order.
var Milestones = []Milestone{MilestoneProposal, MilestoneSurvey, MilestoneAsBuilt}

// ParseMilestone accepts M1, M2 or M3 in any case.
func ParseMilestone(s string) (Milestone, bool) {
	m := Milestone(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case MilestoneProposal, MilestoneSurvey, MilestoneAsBuilt:
		return m, true
	}
	return "", false
}

// Column is the projects column that stores the milestone.
func (m Milestone) Column() string {
	switch m {
	case MilestoneProposal:
		return "m1_proposal_sent"
	case MilestoneSurvey:
		return "m2_survey_completed"
	case MilestoneAsBuilt:
		return "m3_as_built_finished"
	}
	return ""
}

// Label is the human readable task name.
func (m Milestone) Label() string {
	switch m {
	case MilestoneProposal:
		return "Proposal sent to client"
	case MilestoneSurvey:
		return "Survey of building completed"
	case MilestoneAsBuilt:
		return "As-built finished"
	}
	return ""
}
