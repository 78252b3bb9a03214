package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-reservation/models"
	"gorm.io/gorm"
)

// TableService menangani penempatan meja. Dua baris yang saling terkait
// (status reservasi dan reservation_id meja) hanya boleh berubah bersama
// dalam satu transaksi.
type TableService struct {
	db *gorm.DB
}

// NewTableService membuat instance baru TableService
func NewTableService(db *gorm.DB) *TableService {
	return &TableService{db: db}
}

// Seat mendudukkan reservasi booked ke meja kosong. Kedua write dilakukan
// atomik: gagal di tengah berarti rollback penuh, tidak ada partial write.
func (ts *TableService) Seat(tableID, reservationID uint) (*models.Table, error) {
	tx := ts.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var reservation models.Reservation
	if err := tx.First(&reservation, reservationID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Reservation", ID: reservationID}
		}
		return nil, err
	}
	if reservation.Status != models.ReservationStatusBooked {
		tx.Rollback()
		return nil, &RequestError{Msg: fmt.Sprintf("Reservation is already %s and cannot be seated.", reservation.Status)}
	}

	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Table", ID: tableID}
		}
		return nil, err
	}
	if table.IsOccupied() {
		tx.Rollback()
		return nil, &RequestError{Msg: "Table is occupied."}
	}
	if table.Capacity < reservation.People {
		tx.Rollback()
		return nil, &RequestError{Msg: "Table does not have sufficient capacity for this party."}
	}

	// Urutan write mengikuti transaksi penempatan: reservasi dulu, lalu meja
	if err := tx.Model(&reservation).Update("status", models.ReservationStatusSeated).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Conditional write: hanya menang kalau meja masih kosong di dalam
	// transaksi, supaya dua Seat bersamaan tidak double-booking.
	result := tx.Model(&models.Table{}).
		Where("id = ? AND reservation_id IS NULL", tableID).
		Update("reservation_id", reservationID)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, &ConflictError{Msg: "Table is occupied."}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var seated models.Table
	if err := ts.db.Preload("Reservation").First(&seated, tableID).Error; err != nil {
		return nil, err
	}
	return &seated, nil
}

// Release mengosongkan meja dan menandai reservasinya finished, dengan
// jaminan all-or-nothing yang sama dengan Seat.
func (ts *TableService) Release(tableID, reservationID uint) (*models.Table, error) {
	tx := ts.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Table", ID: tableID}
		}
		return nil, err
	}
	if table.ReservationID == nil || *table.ReservationID != reservationID {
		tx.Rollback()
		return nil, &RequestError{Msg: "Table is not occupied by this reservation."}
	}

	if err := tx.Model(&models.Reservation{}).
		Where("id = ?", reservationID).
		Update("status", models.ReservationStatusFinished).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Model(&table).Update("reservation_id", nil).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var released models.Table
	if err := ts.db.First(&released, tableID).Error; err != nil {
		return nil, err
	}
	return &released, nil
}
