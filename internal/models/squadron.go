package models

import "time"

// Squadron is the root of the ownership hierarchy; ACPs belong to
// exactly one squadron and block its deletion.
type Squadron struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"uniqueIndex;size:50;not null" json:"code"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Squadron) TableName() string { return "squadrons" }
