// Package response defines function used to send response to API request
package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/harshitrajsinha/city-weather-go/internal/models"
	"github.com/harshitrajsinha/city-weather-go/internal/store"
)

const fallbackErrorBody = `{"code": "INTERNAL_SERVER_ERROR", "message": "An unexpected error occurred", "error": {}}`

// SendResponseToClient creates and sends success response to API request
func SendResponseToClient(w http.ResponseWriter, statusCode int, message string, data interface{}) error {

	response := models.Response{
		Code:    http.StatusText(statusCode),
		Message: message,
		Data:    data,
	}

	return writeJSON(w, statusCode, response)
}

// SendErrorResponseToClient creates and sends error response to API request
func SendErrorResponseToClient(w http.ResponseWriter, statusName StatusName, errorDetails map[string]string) error {
	return sendError(w, statusName, GetStatusMessage(statusName), errorDetails)
}

// SendFetchErrorToClient sends the error response matching a weather fetch failure.
// The message is the same text shown to users of the terminal client.
func SendFetchErrorToClient(w http.ResponseWriter, err error) error {

	kind := store.KindUnknown
	details := map[string]string{}

	var fetchErr *store.FetchError
	if errors.As(err, &fetchErr) {
		kind = fetchErr.Kind
		details["kind"] = kind.String()
		if fetchErr.StatusCode != 0 {
			details["provider_status"] = strconv.Itoa(fetchErr.StatusCode)
		}
	}

	return sendError(w, StatusNameForKind(kind), store.MessageForError(err), details)
}

func sendError(w http.ResponseWriter, statusName StatusName, message string, errorDetails map[string]string) error {

	if errorDetails == nil {
		errorDetails = map[string]string{}
	}

	errorResponse := models.ErrorResponse{
		Code:    string(statusName),
		Message: message,
		Error:   errorDetails,
	}

	return writeJSON(w, GetStatusCode(statusName), errorResponse)
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) error {

	w.Header().Set("Content-Type", "application/json")

	var b bytes.Buffer
	if err := json.NewEncoder(&b).Encode(body); err != nil {
		log.Printf("[ERROR] encoding response, %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(fallbackErrorBody))
		return err
	}

	w.WriteHeader(statusCode)
	b.WriteTo(w)

	return nil
}
