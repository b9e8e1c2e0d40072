package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type HTTPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HandleHTTPError maps application errors onto the JSON checkout API.
// The notification path never goes through here, see WriteNotifyResponse.
func HandleHTTPError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	switch e := err.(type) {
	case *BadRequestError:
		httpErr = &HTTPError{
			Code:    http.StatusBadRequest,
			Message: e.Error(),
		}
	case *InvalidTransactionDataError:
		httpErr = &HTTPError{
			Code:    http.StatusBadRequest,
			Message: e.Error(),
		}
	case *ConfigMissingError:
		httpErr = &HTTPError{
			Code:    http.StatusServiceUnavailable,
			Message: "The payment service is not configured. Please contact the site administrator.",
		}
	case *InvalidProjectError, *SessionNotFoundError:
		httpErr = &HTTPError{
			Code:    http.StatusNotFound,
			Message: e.Error(),
		}
	case *OrderIDAlreadyBoundError:
		httpErr = &HTTPError{
			Code:    http.StatusConflict,
			Message: e.Error(),
		}
	default:
		httpErr = &HTTPError{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Code)
	json.NewEncoder(w).Encode(httpErr)
}

// WriteNotifyResponse writes the processor's plain-text acknowledgement.
// The body format is fixed by the Payeer protocol: "<orderid>|success" or
// "<orderid>|error", always with HTTP 200 so the processor's retry logic
// is driven by the marker, not the status code.
func WriteNotifyResponse(w http.ResponseWriter, orderID string, ok bool) {
	marker := "error"
	if ok {
		marker = "success"
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "%s|%s", orderID, marker)
}
