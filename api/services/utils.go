package services

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EO-DataHub/eodhp-user-console/models"
)

func WriteResponse(w http.ResponseWriter, statusCode int, response interface{}, location ...string) {

	w.Header().Set("Content-Type", "application/json")

	// We don't want to cache API responses so the client receives most curent data
	w.Header().Set("Cache-Control", "max-age=0")

	// Conditionally set the Location header if provided
	if len(location) > 0 && location[0] != "" {
		w.Header().Set("Location", location[0])
	}

	w.WriteHeader(statusCode)

	if response != nil {
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
	}
}

// HandleErrResponse writes err in the standard response envelope. Directory
// errors carry their upstream status as the error code.
func HandleErrResponse(w http.ResponseWriter, statusCode int, err error) {
	var httpErr *HTTPError
	response := models.Response{
		Success:      0,
		ErrorDetails: err.Error(),
	}

	if errors.As(err, &httpErr) {
		response.ErrorCode = http.StatusText(httpErr.Status)
	}

	WriteResponse(w, statusCode, response)
}

func HandleSuccessResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	WriteResponse(w, statusCode, models.Response{
		Success: 1,
		Data:    data,
	})
}
