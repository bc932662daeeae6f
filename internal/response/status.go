// Package response defines function used to send response to API request
package response

import "github.com/harshitrajsinha/city-weather-go/internal/store"

// StatusName represents custom string type for custom status code text
type StatusName string

const (
	// StatusBadRequestCode represents custom status text for HTTP status code 400
	StatusBadRequestCode StatusName = "BAD_REQUEST"
	// StatusUnauthorizedCode represents custom status text for HTTP status code 401
	StatusUnauthorizedCode StatusName = "UNAUTHORIZED"
	// StatusAuthTokenInvalidCode represents custom status text for HTTP status code 401
	StatusAuthTokenInvalidCode StatusName = "INVALID_AUTH_TOKEN"
	// StatusAuthTokenExpiredCode represents custom status text for HTTP status code 401
	StatusAuthTokenExpiredCode StatusName = "AUTH_TOKEN_EXPIRED"
	// StatusCityNotFoundCode represents custom status text for HTTP status code 404
	StatusCityNotFoundCode StatusName = "CITY_NOT_FOUND"
	// StatusFavoriteNotSetCode represents custom status text for HTTP status code 404
	StatusFavoriteNotSetCode StatusName = "FAVORITE_NOT_SET"
	// StatusMethodNotAllowedCode represents custom status text for HTTP status code 405
	StatusMethodNotAllowedCode StatusName = "METHOD_NOT_ALLOWED"
	// StatusInternalServerErrorCode represents custom status text for HTTP status code 500
	StatusInternalServerErrorCode StatusName = "INTERNAL_SERVER_ERROR"
	// StatusProviderUnauthorizedCode represents custom status text for HTTP status code 502
	StatusProviderUnauthorizedCode StatusName = "PROVIDER_UNAUTHORIZED"
	// StatusProviderErrorCode represents custom status text for HTTP status code 502
	StatusProviderErrorCode StatusName = "PROVIDER_ERROR"
	// StatusProviderBadResponseCode represents custom status text for HTTP status code 502
	StatusProviderBadResponseCode StatusName = "PROVIDER_BAD_RESPONSE"
	// StatusProviderUnreachableCode represents custom status text for HTTP status code 503
	StatusProviderUnreachableCode StatusName = "PROVIDER_UNREACHABLE"
)

// StatusMessageMap maps status message to respective status name
var StatusMessageMap = map[StatusName]string{
	StatusBadRequestCode:           "The request is invalid",
	StatusUnauthorizedCode:         "Authentication is required",
	StatusAuthTokenInvalidCode:     "Authentication is invalid",
	StatusAuthTokenExpiredCode:     "Authentication token has expired. Please create a new one",
	StatusCityNotFoundCode:         store.MessageCityNotFound,
	StatusFavoriteNotSetCode:       "No favorite city has been saved",
	StatusMethodNotAllowedCode:     "This HTTP method is not supported for this endpoint",
	StatusInternalServerErrorCode:  "An unexpected error occurred",
	StatusProviderUnauthorizedCode: store.MessageUnauthorized,
	StatusProviderErrorCode:        "The weather provider failed. Please try again later",
	StatusProviderBadResponseCode:  store.MessageDecodingError,
	StatusProviderUnreachableCode:  store.MessageUnreachable,
}

// StatusNameMap maps status name to respective status code
var StatusNameMap = map[StatusName]int{
	StatusBadRequestCode:           400,
	StatusUnauthorizedCode:         401,
	StatusAuthTokenInvalidCode:     401,
	StatusAuthTokenExpiredCode:     401,
	StatusCityNotFoundCode:         404,
	StatusFavoriteNotSetCode:       404,
	StatusMethodNotAllowedCode:     405,
	StatusInternalServerErrorCode:  500,
	StatusProviderUnauthorizedCode: 502,
	StatusProviderErrorCode:        502,
	StatusProviderBadResponseCode:  502,
	StatusProviderUnreachableCode:  503,
}

// kindStatusMap maps a fetch error kind to the status name sent to API clients
var kindStatusMap = map[store.ErrorKind]StatusName{
	store.KindInvalidInput: StatusBadRequestCode,
	store.KindNotFound:     StatusCityNotFoundCode,
	store.KindUnauthorized: StatusProviderUnauthorizedCode,
	store.KindServerError:  StatusProviderErrorCode,
	store.KindDecoding:     StatusProviderBadResponseCode,
	store.KindUnreachable:  StatusProviderUnreachableCode,
	store.KindUnknown:      StatusInternalServerErrorCode,
}

// GetStatusCode returns http status code based on status name
func GetStatusCode(statusName StatusName) int {
	if code, ok := StatusNameMap[statusName]; ok {
		return code
	}
	return 500
}

// GetStatusMessage returns message based on status name
func GetStatusMessage(statusName StatusName) string {
	if message, ok := StatusMessageMap[statusName]; ok {
		return message
	}
	return "An unexpected error occurred"
}

// StatusNameForKind returns the status name used for a fetch error kind
func StatusNameForKind(kind store.ErrorKind) StatusName {
	if name, ok := kindStatusMap[kind]; ok {
		return name
	}
	return StatusInternalServerErrorCode
}
