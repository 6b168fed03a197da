package models

import "time"

// Member is an engineer taking part in the BAU rotation
type Member struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Pair is the two members on duty for one slot
type Pair struct {
	First  Member `json:"first"`
	Second Member `json:"second"`
}

// IDs returns the pair as a two element id slice, first member first
func (p Pair) IDs() []string {
	return []string{p.First.ID, p.Second.ID}
}

// Contains reports whether the member id is part of the pair
func (p Pair) Contains(id string) bool {
	return p.First.ID == id || p.Second.ID == id
}

// Duty is the result of a rotation lookup for a single date
type Duty struct {
	Date      time.Time `json:"date"`
	Period    int64     `json:"period"`
	SlotIndex int       `json:"slot"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Pair      Pair      `json:"pair"`
	Strategy  string    `json:"strategy"`
}

// DutyResponse is the payload returned by the duty lookup endpoints.
// Baus keeps the field name used by existing clients.
type DutyResponse struct {
	Engineers []Member `json:"engineers"`
	Baus      []string `json:"baus"`
	Period    int64    `json:"period"`
	Slot      int      `json:"slot"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Strategy  string   `json:"strategy"`
}

// DutyInput is the body of a lookup against a caller supplied roster
type DutyInput struct {
	Date      string   `json:"date" binding:"required"`
	Engineers []Member `json:"engineers"`
}

// RosterInput is the body of a roster validation request
type RosterInput struct {
	Engineers []Member `json:"engineers"`
}

// ScheduleEntry is one slot of a schedule range
type ScheduleEntry struct {
	Period int64    `json:"period"`
	Slot   int      `json:"slot"`
	Start  string   `json:"start"`
	End    string   `json:"end"`
	Baus   []string `json:"baus"`
}

// ScheduleResponse is the data structure for a schedule range
type ScheduleResponse struct {
	Engineers     []Member        `json:"engineers"`
	Strategy      string          `json:"strategy"`
	Slots         []ScheduleEntry `json:"slots"`
	Load          map[string]int  `json:"load"` // member ID -> slots on duty
	FairnessScore float64         `json:"fairness_score"`
}
