package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/services"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Errors  []string    `json:"errors,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondValidationErrors -> satu pelanggaran dikirim sebagai message tunggal,
// dua atau lebih sebagai daftar terurut
func RespondValidationErrors(c *gin.Context, violations []string) {
	if len(violations) == 1 {
		c.JSON(http.StatusBadRequest, JSONResponse{
			Status:  false,
			Message: violations[0],
		})
		return
	}
	c.JSON(http.StatusBadRequest, JSONResponse{
		Status:  false,
		Message: "Request data is invalid.",
		Errors:  violations,
	})
}

// RespondServiceError memetakan error dari layer service ke status HTTP.
// Error yang tidak dikenali dilaporkan opaque sebagai 500, tidak ditafsirkan.
func RespondServiceError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var badRequest *services.RequestError
	var conflict *services.ConflictError
	switch {
	case errors.As(err, &notFound):
		RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &badRequest):
		RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &conflict):
		RespondError(c, http.StatusConflict, err)
	default:
		RespondError(c, http.StatusInternalServerError, err)
	}
}
