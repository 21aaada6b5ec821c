package models

import "time"

type Client struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Contact   string    `gorm:"type:varchar(120)" json:"contact"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Street    string    `gorm:"type:varchar(120)" json:"street"`
	City      string    `gorm:"type:varchar(80)" json:"city"`
	State     string    `gorm:"type:varchar(20)" json:"state"`
	Zip       string    `gorm:"type:varchar(20)" json:"zip"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Projects []Project `gorm:"foreignKey:ClientID" json:"-"`
}
