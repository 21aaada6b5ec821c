package models

import "time"

type Building struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Street    string    `gorm:"type:varchar(120)" json:"street"`
	City      string    `gorm:"type:varchar(80)" json:"city"`
	State     string    `gorm:"type:varchar(20)" json:"state"`
	Zip       string    `gorm:"type:varchar(20)" json:"zip"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Projects []Project `gorm:"foreignKey:BuildingID" json:"-"`
}
