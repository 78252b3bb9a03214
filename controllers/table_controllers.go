package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/events"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/services"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"github.com/yeremiapane/restaurant-reservation/validation"
	"gorm.io/gorm"
)

type TableController struct {
	DB      *gorm.DB
	Service *services.TableService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		DB:      db,
		Service: services.NewTableService(db),
	}
}

type tableRequest struct {
	Data *validation.TablePayload `json:"data"`
}

type seatRequest struct {
	Data *struct {
		ReservationID uint `json:"reservation_id"`
	} `json:"data"`
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Data == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New(validation.MsgMissingData))
		return
	}

	if violations := validation.ValidateTable(req.Data); len(violations) > 0 {
		utils.RespondValidationErrors(c, violations)
		return
	}

	capacity, _ := req.Data.CapacityCount()
	table := models.Table{
		TableName: req.Data.TableName,
		Capacity:  capacity,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableCreate(table)

	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableName, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan seluruh meja, diurutkan berdasarkan nama
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Preload("Reservation").Order("table_name").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	idParam := c.Param("table_id")
	table, ok := tc.findTable(c, idParam)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// SeatTable -> mendudukkan reservasi ke meja; kedua record diubah
// atomik oleh TableService
func (tc *TableController) SeatTable(c *gin.Context) {
	idParam := c.Param("table_id")
	tableID, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Table %s cannot be found.", idParam))
		return
	}

	var req seatRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil || req.Data == nil || req.Data.ReservationID == 0 {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("Seat request must include a reservation_id."))
		return
	}

	table, err := tc.Service.Seat(uint(tableID), req.Data.ReservationID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	events.BroadcastTableUpdate(*table)
	if table.Reservation != nil {
		events.BroadcastReservationUpdate(*table.Reservation)
	}

	utils.InfoLogger.Printf("Reservation %d seated at table %d", req.Data.ReservationID, table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table seated", table)
}

// ReleaseTable -> mengosongkan meja dan menandai reservasinya finished
func (tc *TableController) ReleaseTable(c *gin.Context) {
	idParam := c.Param("table_id")
	table, ok := tc.findTable(c, idParam)
	if !ok {
		return
	}
	if !table.IsOccupied() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Table is not occupied."))
		return
	}

	reservationID := *table.ReservationID
	released, err := tc.Service.Release(table.ID, reservationID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	events.BroadcastTableUpdate(*released)

	utils.InfoLogger.Printf("Table %d released, reservation %d finished", released.ID, reservationID)
	utils.RespondJSON(c, http.StatusOK, "Table released", released)
}

// findTable mengembalikan meja atau menulis response 404 yang menyebut id
func (tc *TableController) findTable(c *gin.Context, idParam string) (*models.Table, bool) {
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Table %s cannot be found.", idParam))
		return nil, false
	}

	var table models.Table
	if err := tc.DB.Preload("Reservation").First(&table, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, fmt.Errorf("Table %s cannot be found.", idParam))
			return nil, false
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil, false
	}
	return &table, true
}
