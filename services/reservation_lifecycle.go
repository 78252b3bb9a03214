package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-reservation/models"
)

// transition adalah satu sisi legal pada state machine status reservasi.
type transition struct {
	from string
	to   string
}

// Hanya sisi di tabel ini yang legal; selain itu ditolak, tidak pernah
// di-coerce diam-diam.
var allowedTransitions = []transition{
	{models.ReservationStatusBooked, models.ReservationStatusSeated},
	{models.ReservationStatusBooked, models.ReservationStatusCancelled},
	{models.ReservationStatusSeated, models.ReservationStatusFinished},
}

var knownStatuses = map[string]bool{
	models.ReservationStatusBooked:    true,
	models.ReservationStatusSeated:    true,
	models.ReservationStatusFinished:  true,
	models.ReservationStatusCancelled: true,
}

// IsKnownStatus -> apakah string status termasuk enum yang dikenal
func IsKnownStatus(status string) bool {
	return knownStatuses[status]
}

// CheckTransition memeriksa apakah perubahan current -> requested legal.
// Error yang dikembalikan selalu menyebut status yang bermasalah.
func CheckTransition(current, requested string) error {
	if !knownStatuses[requested] {
		return &RequestError{Msg: fmt.Sprintf("Status unknown: %s.", requested)}
	}
	if current == models.ReservationStatusFinished {
		return &RequestError{Msg: "A finished reservation cannot be updated."}
	}
	if current == models.ReservationStatusCancelled {
		return &RequestError{Msg: "A cancelled reservation cannot be updated."}
	}
	for _, t := range allowedTransitions {
		if t.from == current && t.to == requested {
			return nil
		}
	}
	return &RequestError{Msg: fmt.Sprintf("Status cannot change from %s to %s.", current, requested)}
}
