package models

import "time"

// MissionStatus is the closed mission lifecycle set.
type MissionStatus string

const (
	MissionStatusActive    MissionStatus = "active"
	MissionStatusCompleted MissionStatus = "completed"
	MissionStatusAborted   MissionStatus = "aborted"
)

func (s MissionStatus) Valid() bool {
	switch s {
	case MissionStatusActive, MissionStatusCompleted, MissionStatusAborted:
		return true
	}
	return false
}

// MissionWindow is one entry of the opaque ordered window list carried
// on a mission.
type MissionWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label,omitempty"`
}

type MissionWindows []MissionWindow

// Mission is a task record owned by one ACP and one commanding user.
// Auth codes are generated at insert time and globally unique.
type Mission struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ACPID       uint           `gorm:"column:acp_id;not null;index" json:"acpId"`
	CommanderID string         `gorm:"column:commander_id;size:64;not null;index" json:"commanderId"`
	AuthCode    string         `gorm:"uniqueIndex;size:64;not null" json:"authCode"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Status      MissionStatus  `gorm:"size:32;not null;default:active" json:"status"`
	Windows     MissionWindows `gorm:"column:mission_windows;serializer:json;type:text" json:"missionWindows"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	ACPRef    *ACP  `gorm:"foreignKey:ACPID;constraint:OnDelete:CASCADE" json:"-"`
	Commander *User `gorm:"foreignKey:CommanderID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Mission) TableName() string { return "missions" }

// MissionAssignment links an operator user to a mission. The composite
// key doubles as the uniqueness guarantee for concurrent inserts; rows
// cascade away with either parent.
type MissionAssignment struct {
	OperatorID string `gorm:"primaryKey;size:64" json:"operatorId"`
	MissionID  uint   `gorm:"primaryKey" json:"missionId"`

	Operator *User    `gorm:"foreignKey:OperatorID;constraint:OnDelete:CASCADE" json:"-"`
	Mission  *Mission `gorm:"foreignKey:MissionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MissionAssignment) TableName() string { return "mission_assignments" }

// MissionView is a mission row with its joined identities attached, the
// shape list and detail endpoints return. Operator carries the joined
// assignment's identity; acp and squadron are filled on detail lookups.
type MissionView struct {
	Mission
	ACP       *ACP      `json:"acp,omitempty"`
	Squadron  *Squadron `json:"squadron,omitempty"`
	Commander *UserRef  `json:"commander,omitempty"`
	Operator  *UserRef  `json:"operator,omitempty"`
}
