package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/events"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/services"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"github.com/yeremiapane/restaurant-reservation/validation"
	"gorm.io/gorm"
)

type ReservationController struct {
	DB        *gorm.DB
	Validator *validation.ReservationValidator
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{
		DB:        db,
		Validator: validation.NewReservationValidator(),
	}
}

// Request body memakai amplop {data: ...}
type reservationRequest struct {
	Data *validation.ReservationPayload `json:"data"`
}

type statusRequest struct {
	Data *struct {
		Status string `json:"status"`
	} `json:"data"`
}

var nonDigitRegex = regexp.MustCompile(`\D`)

// CreateReservation -> membuat reservasi baru, status selalu dipaksa "booked"
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Data == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New(validation.MsgMissingData))
		return
	}

	if violations := rc.Validator.Validate(req.Data); len(violations) > 0 {
		utils.RespondValidationErrors(c, violations)
		return
	}

	people, _ := req.Data.PeopleCount()
	reservation := models.Reservation{
		FirstName:       req.Data.FirstName,
		LastName:        req.Data.LastName,
		MobileNumber:    req.Data.MobileNumber,
		ReservationDate: req.Data.ReservationDate,
		ReservationTime: req.Data.ReservationTime,
		People:          people,
		Status:          models.ReservationStatusBooked,
	}

	if err := rc.DB.Create(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastReservationCreate(reservation)

	utils.InfoLogger.Printf("New reservation created: %s %s on %s %s (party of %d)",
		reservation.FirstName, reservation.LastName,
		reservation.ReservationDate, reservation.ReservationTime, reservation.People)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// GetAllReservations -> list reservasi, bisa difilter ?date= atau ?mobile_number=
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var reservations []models.Reservation

	if date := c.Query("date"); date != "" {
		// Reservasi finished disembunyikan dari dashboard harian
		err := rc.DB.
			Where("reservation_date = ? AND status <> ?", date, models.ReservationStatusFinished).
			Order("reservation_time").
			Find(&reservations).Error
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Reservations on "+date, reservations)
		return
	}

	if fragment := c.Query("mobile_number"); fragment != "" {
		// Pencarian nomor telepon mengabaikan tanda baca di kedua sisi
		digits := nonDigitRegex.ReplaceAllString(fragment, "")
		err := rc.DB.
			Where("REPLACE(mobile_number, '-', '') LIKE ?", "%"+digits+"%").
			Order("reservation_date").
			Find(&reservations).Error
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Reservations matching "+fragment, reservations)
		return
	}

	if err := rc.DB.Order("reservation_date, reservation_time").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// GetReservationByID -> detail satu reservasi
func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	idParam := c.Param("reservation_id")
	reservation, ok := rc.findReservation(c, idParam)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// UpdateReservationStatus -> perubahan status lewat jalur generic,
// dijaga oleh state machine; cancelled hanya lewat endpoint cancel
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	idParam := c.Param("reservation_id")

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Data == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New(validation.MsgMissingData))
		return
	}

	reservation, ok := rc.findReservation(c, idParam)
	if !ok {
		return
	}

	requested := req.Data.Status
	if requested == models.ReservationStatusCancelled {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("A reservation can only be cancelled through the cancel action."))
		return
	}
	if err := services.CheckTransition(reservation.Status, requested); err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	if err := rc.DB.Model(reservation).Update("status", requested).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastReservationUpdate(*reservation)

	utils.InfoLogger.Printf("Reservation %d status changed to %s", reservation.ID, requested)
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}

// CancelReservation -> jalur khusus booked -> cancelled
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	idParam := c.Param("reservation_id")
	reservation, ok := rc.findReservation(c, idParam)
	if !ok {
		return
	}

	if err := services.CheckTransition(reservation.Status, models.ReservationStatusCancelled); err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	if err := rc.DB.Model(reservation).Update("status", models.ReservationStatusCancelled).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastReservationUpdate(*reservation)

	utils.InfoLogger.Printf("Reservation %d cancelled", reservation.ID)
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", reservation)
}

// UpdateReservation -> edit reservasi booked, melewati pipeline validasi
// yang sama dengan create
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	idParam := c.Param("reservation_id")

	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Data == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New(validation.MsgMissingData))
		return
	}

	reservation, ok := rc.findReservation(c, idParam)
	if !ok {
		return
	}
	if reservation.Status != models.ReservationStatusBooked {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("Only booked reservations can be edited, this one is %s.", reservation.Status))
		return
	}

	if violations := rc.Validator.Validate(req.Data); len(violations) > 0 {
		utils.RespondValidationErrors(c, violations)
		return
	}

	people, _ := req.Data.PeopleCount()
	updates := map[string]interface{}{
		"first_name":       req.Data.FirstName,
		"last_name":        req.Data.LastName,
		"mobile_number":    req.Data.MobileNumber,
		"reservation_date": req.Data.ReservationDate,
		"reservation_time": req.Data.ReservationTime,
		"people":           people,
	}
	if err := rc.DB.Model(reservation).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastReservationUpdate(*reservation)

	utils.InfoLogger.Printf("Reservation %d updated", reservation.ID)
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

// findReservation mengembalikan reservasi atau menulis response 404
// yang menyebut id yang hilang
func (rc *ReservationController) findReservation(c *gin.Context, idParam string) (*models.Reservation, bool) {
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound,
			fmt.Errorf("Reservation %s cannot be found.", idParam))
		return nil, false
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound,
				fmt.Errorf("Reservation %s cannot be found.", idParam))
			return nil, false
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil, false
	}
	return &reservation, true
}
