package models

import (
	"regexp"
	"time"
)

// ACPType is the closed set of tracked platform classes.
type ACPType string

const (
	ACPTypeViper             ACPType = "viper"
	ACPTypeGhostEye          ACPType = "ghost_eye"
	ACPTypeSentinel          ACPType = "sentinel"
	ACPTypeElectronicWarfare ACPType = "electronic_warfare"
)

func (t ACPType) Valid() bool {
	switch t {
	case ACPTypeViper, ACPTypeGhostEye, ACPTypeSentinel, ACPTypeElectronicWarfare:
		return true
	}
	return false
}

// SerialNumberPattern constrains ACP serial numbers.
var SerialNumberPattern = regexp.MustCompile(`^[A-Z0-9-]+$`)

// ACP is a tracked aircraft command platform. Serial numbers are
// globally unique; the owning squadron cannot be deleted while the ACP
// exists, and deleting the ACP takes its missions with it.
type ACP struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SquadronID   uint      `gorm:"column:squadron_id;not null;index" json:"squadronId"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Type         ACPType   `gorm:"size:32;not null" json:"type"`
	SerialNumber string    `gorm:"uniqueIndex;size:50;not null" json:"serialNumber"`
	Description  string    `gorm:"size:255" json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Squadron *Squadron `gorm:"foreignKey:SquadronID;constraint:OnDelete:RESTRICT" json:"squadron,omitempty"`
}

func (ACP) TableName() string { return "acps" }
