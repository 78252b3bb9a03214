package models

import "time"

// Status reservasi
const (
	ReservationStatusBooked    = "booked"
	ReservationStatusSeated    = "seated"
	ReservationStatusFinished  = "finished"
	ReservationStatusCancelled = "cancelled"
)

type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	FirstName       string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string    `gorm:"type:varchar(100);not null" json:"last_name"`
	MobileNumber    string    `gorm:"type:varchar(20);not null" json:"mobile_number"`
	ReservationDate string    `gorm:"type:varchar(10);not null;index" json:"reservation_date"`
	ReservationTime string    `gorm:"type:varchar(5);not null" json:"reservation_time"`
	People          int       `gorm:"not null" json:"people"`
	Status          string    `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// IsFinished -> reservasi yang sudah selesai tidak boleh diubah lagi
func (r *Reservation) IsFinished() bool {
	return r.Status == ReservationStatusFinished
}
