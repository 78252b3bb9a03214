package models

import "time"

type Table struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	TableName     string       `gorm:"type:varchar(50);not null;index" json:"table_name"`
	Capacity      int          `gorm:"not null" json:"capacity"`
	ReservationID *uint        `gorm:"index" json:"reservation_id"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"reservation,omitempty"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null" json:"updated_at"`
}

// IsOccupied -> meja sedang dipakai jika reservation_id terisi
func (t *Table) IsOccupied() bool {
	return t.ReservationID != nil
}
