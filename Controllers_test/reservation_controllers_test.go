package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/controllers"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupTestDB -> SQLite in-memory terpisah per test
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Reservation{}, &models.Table{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupReservationRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	ctrl := controllers.NewReservationController(db)
	router.GET("/reservations", ctrl.GetAllReservations)
	router.POST("/reservations", ctrl.CreateReservation)
	router.GET("/reservations/:reservation_id", ctrl.GetReservationByID)
	router.PUT("/reservations/:reservation_id", ctrl.UpdateReservation)
	router.PUT("/reservations/:reservation_id/status", ctrl.UpdateReservationStatus)
	router.PUT("/reservations/:reservation_id/cancel", ctrl.CancelReservation)
	return router
}

func performJSON(router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return response
}

// futureDate mencari tanggal dengan hari tertentu, cukup jauh di depan
func futureDate(weekday time.Weekday) string {
	d := time.Now().UTC().AddDate(0, 0, 14)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func reservationPayload() map[string]interface{} {
	return map[string]interface{}{
		"first_name":       "Ada",
		"last_name":        "Lovelace",
		"mobile_number":    "123-456-7890",
		"reservation_date": futureDate(time.Saturday),
		"reservation_time": "18:00",
		"people":           2,
	}
}

func TestCreateReservation(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	w := performJSON(router, "POST", "/reservations", map[string]interface{}{"data": reservationPayload()})
	assert.Equal(t, http.StatusCreated, w.Code)

	response := parseResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "booked", data["status"])

	var stored models.Reservation
	assert.NoError(t, db.First(&stored, uint(data["id"].(float64))).Error)
	assert.Equal(t, models.ReservationStatusBooked, stored.Status)
}

func TestCreateReservationWithExplicitBookedStatus(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	payload := reservationPayload()
	payload["status"] = "booked"
	w := performJSON(router, "POST", "/reservations", map[string]interface{}{"data": payload})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateReservationRejectsNonBookedStatus(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	for _, status := range []string{"seated", "finished"} {
		payload := reservationPayload()
		payload["status"] = status
		w := performJSON(router, "POST", "/reservations", map[string]interface{}{"data": payload})
		assert.Equal(t, http.StatusBadRequest, w.Code, "status=%s", status)

		response := parseResponse(t, w)
		assert.Contains(t, response["message"], status)
	}
}

func TestCreateReservationWithoutDataProperty(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	w := performJSON(router, "POST", "/reservations", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := parseResponse(t, w)
	assert.Equal(t, "req body must have data property.", response["message"])
}

// Semua pelanggaran dilaporkan sekaligus sebagai daftar terurut
func TestCreateReservationAggregatesViolations(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	w := performJSON(router, "POST", "/reservations", map[string]interface{}{
		"data": map[string]interface{}{
			"mobile_number":    "12345",
			"reservation_date": "bad",
			"reservation_time": "bad",
			"people":           "2",
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := parseResponse(t, w)
	errs := response["errors"].([]interface{})
	assert.Equal(t, []interface{}{
		"Reservation must include a first_name.",
		"Reservation must include a last_name.",
		"Reservation must include a mobile_number in this format: XXX-XXX-XXXX.",
		"Reservation must include a reservation_date in this format: YYYY-MM-DD.",
		"Reservation must include a reservation_time in this format: HH:MM.",
		"Reservation must indicate the number of people in a party, ranging from 1 to 6.",
	}, errs)
}

// Satu pelanggaran dikirim sebagai message tunggal, tanpa array errors
func TestSingleViolationIsASingleMessage(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	payload := reservationPayload()
	payload["first_name"] = ""
	w := performJSON(router, "POST", "/reservations", map[string]interface{}{"data": payload})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := parseResponse(t, w)
	assert.Equal(t, "Reservation must include a first_name.", response["message"])
	assert.Nil(t, response["errors"])
}

func TestCreateReservationOnTuesday(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	payload := reservationPayload()
	payload["reservation_date"] = futureDate(time.Tuesday)
	w := performJSON(router, "POST", "/reservations", map[string]interface{}{"data": payload})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := parseResponse(t, w)
	assert.Contains(t, response["message"], "Tuesday")
}

func TestCreateReservationBeforeOpening(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	payload := reservationPayload()
	payload["reservation_time"] = "09:00"
	w := performJSON(router, "POST", "/reservations", map[string]interface{}{"data": payload})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := parseResponse(t, w)
	assert.Contains(t, response["message"], "10:30")
}

func TestGetReservationByID(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	reservation := models.Reservation{
		FirstName: "Grace", LastName: "Hopper", MobileNumber: "555-1234",
		ReservationDate: "2999-01-01", ReservationTime: "18:00",
		People: 4, Status: models.ReservationStatusBooked,
	}
	db.Create(&reservation)

	w := performJSON(router, "GET", fmt.Sprintf("/reservations/%d", reservation.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Grace", data["first_name"])
}

func TestGetReservationNotFound(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	w := performJSON(router, "GET", "/reservations/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	response := parseResponse(t, w)
	assert.Contains(t, response["message"], "999")
}

func TestUpdateReservationStatus(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	reservation := models.Reservation{
		FirstName: "Ada", LastName: "Lovelace", MobileNumber: "555-1234",
		ReservationDate: "2999-01-01", ReservationTime: "18:00",
		People: 2, Status: models.ReservationStatusBooked,
	}
	db.Create(&reservation)

	url := fmt.Sprintf("/reservations/%d/status", reservation.ID)

	w := performJSON(router, "PUT", url, map[string]interface{}{
		"data": map[string]string{"status": "seated"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = performJSON(router, "PUT", url, map[string]interface{}{
		"data": map[string]string{"status": "finished"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Reservation
	db.First(&stored, reservation.ID)
	assert.Equal(t, models.ReservationStatusFinished, stored.Status)
}

func TestUpdateStatusOnFinishedReservation(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	reservation := models.Reservation{
		FirstName: "Ada", LastName: "Lovelace", MobileNumber: "555-1234",
		ReservationDate: "2999-01-01", ReservationTime: "18:00",
		People: 2, Status: models.ReservationStatusFinished,
	}
	db.Create(&reservation)

	w := performJSON(router, "PUT", fmt.Sprintf("/reservations/%d/status", reservation.ID),
		map[string]interface{}{"data": map[string]string{"status": "seated"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Record di database tidak berubah
	var stored models.Reservation
	db.First(&stored, reservation.ID)
	assert.Equal(t, models.ReservationStatusFinished, stored.Status)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	reservation := models.Reservation{
		FirstName: "Ada", LastName: "Lovelace", MobileNumber: "555-1234",
		ReservationDate: "2999-01-01", ReservationTime: "18:00",
		People: 2, Status: models.ReservationStatusBooked,
	}
	db.Create(&reservation)

	w := performJSON(router, "PUT", fmt.Sprintf("/reservations/%d/status", reservation.ID),
		map[string]interface{}{"data": map[string]string{"status": "waiting"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	response := parseResponse(t, w)
	assert.Contains(t, response["message"], "waiting")
}

// cancelled tidak boleh lewat jalur status generic
func TestCancelViaGenericStatusRejected(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	reservation := models.Reservation{
		FirstName: "Ada", LastName: "Lovelace", MobileNumber: "555-1234",
		ReservationDate: "2999-01-01", ReservationTime: "18:00",
		People: 2, Status: models.ReservationStatusBooked,
	}
	db.Create(&reservation)

	w := performJSON(router, "PUT", fmt.Sprintf("/reservations/%d/status", reservation.ID),
		map[string]interface{}{"data": map[string]string{"status": "cancelled"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelReservation(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	reservation := models.Reservation{
		FirstName: "Ada", LastName: "Lovelace", MobileNumber: "555-1234",
		ReservationDate: "2999-01-01", ReservationTime: "18:00",
		People: 2, Status: models.ReservationStatusBooked,
	}
	db.Create(&reservation)

	url := fmt.Sprintf("/reservations/%d/cancel", reservation.ID)
	w := performJSON(router, "PUT", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Reservation
	db.First(&stored, reservation.ID)
	assert.Equal(t, models.ReservationStatusCancelled, stored.Status)

	// cancelled bersifat terminal
	w = performJSON(router, "PUT", url, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditBookedReservation(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	reservation := models.Reservation{
		FirstName: "Ada", LastName: "Lovelace", MobileNumber: "555-1234",
		ReservationDate: "2999-01-01", ReservationTime: "18:00",
		People: 2, Status: models.ReservationStatusBooked,
	}
	db.Create(&reservation)

	payload := reservationPayload()
	payload["people"] = 4
	w := performJSON(router, "PUT", fmt.Sprintf("/reservations/%d", reservation.ID),
		map[string]interface{}{"data": payload})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Reservation
	db.First(&stored, reservation.ID)
	assert.Equal(t, 4, stored.People)
	assert.Equal(t, models.ReservationStatusBooked, stored.Status)
}

func TestEditRunsFullValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	reservation := models.Reservation{
		FirstName: "Ada", LastName: "Lovelace", MobileNumber: "555-1234",
		ReservationDate: "2999-01-01", ReservationTime: "18:00",
		People: 2, Status: models.ReservationStatusBooked,
	}
	db.Create(&reservation)

	payload := reservationPayload()
	payload["people"] = 9
	w := performJSON(router, "PUT", fmt.Sprintf("/reservations/%d", reservation.ID),
		map[string]interface{}{"data": payload})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored models.Reservation
	db.First(&stored, reservation.ID)
	assert.Equal(t, 2, stored.People)
}

func TestListReservationsByDate(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	date := "2999-05-20"
	seed := []models.Reservation{
		{FirstName: "B", LastName: "B", MobileNumber: "555-0002", ReservationDate: date, ReservationTime: "19:00", People: 2, Status: models.ReservationStatusBooked},
		{FirstName: "A", LastName: "A", MobileNumber: "555-0001", ReservationDate: date, ReservationTime: "11:00", People: 2, Status: models.ReservationStatusBooked},
		{FirstName: "C", LastName: "C", MobileNumber: "555-0003", ReservationDate: date, ReservationTime: "12:00", People: 2, Status: models.ReservationStatusFinished},
		{FirstName: "D", LastName: "D", MobileNumber: "555-0004", ReservationDate: "2999-05-21", ReservationTime: "12:00", People: 2, Status: models.ReservationStatusBooked},
	}
	for i := range seed {
		db.Create(&seed[i])
	}

	w := performJSON(router, "GET", "/reservations?date="+date, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseResponse(t, w)
	data := response["data"].([]interface{})
	// finished dan tanggal lain tidak ikut, sisanya urut berdasarkan jam
	assert.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	second := data[1].(map[string]interface{})
	assert.Equal(t, "11:00", first["reservation_time"])
	assert.Equal(t, "19:00", second["reservation_time"])
}

func TestSearchReservationsByMobileNumber(t *testing.T) {
	db := setupTestDB(t)
	router := setupReservationRouter(db)

	seed := []models.Reservation{
		{FirstName: "Ada", LastName: "Lovelace", MobileNumber: "123-456-7890", ReservationDate: "2999-01-01", ReservationTime: "18:00", People: 2, Status: models.ReservationStatusBooked},
		{FirstName: "Grace", LastName: "Hopper", MobileNumber: "555-1234", ReservationDate: "2999-01-01", ReservationTime: "19:00", People: 2, Status: models.ReservationStatusBooked},
	}
	for i := range seed {
		db.Create(&seed[i])
	}

	w := performJSON(router, "GET", "/reservations?mobile_number=456", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	response := parseResponse(t, w)
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
	match := data[0].(map[string]interface{})
	assert.Equal(t, "Ada", match["first_name"])
}
