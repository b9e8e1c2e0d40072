package errors

import (
	"errors"
	"fmt"
)

const (
	ErrorFailedToConnectToTheDatabase = "Failed to connect to the database"
	ErrorFailedToConnectToRedis       = "Failed to connect to Redis"
	ErrorFailedToRunTheServer         = "Failed to run the server"
	ErrorFailedToShutdownTheServer    = "Failed to shutdown the server"
	ErrFailedDecodeRequestBody        = "Failed to decode request body"
	ErrInvalidRequestBody             = "Invalid request body"
	ErrFailedProcessNotification      = "Failed to process notification"
	ErrFailedBuildPaymentRequest      = "Failed to build payment request"
	ErrFailedSweepSessions            = "Failed to sweep stale payment sessions"
)

type BadRequestError struct {
	Message string
}

func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("Bad request: %s", e.Message)
}

// ConfigMissingError signals an unconfigured merchant id. It surfaces as a
// plain-language message in the checkout response, never as a crash.
type ConfigMissingError struct {
	Key string
}

func NewConfigMissingError(key string) *ConfigMissingError {
	return &ConfigMissingError{Key: key}
}

func (e *ConfigMissingError) Error() string {
	return fmt.Sprintf("configuration value %q is not set", e.Key)
}

type InvalidRequestMethodError struct {
	Method string
}

func NewInvalidRequestMethodError(method string) *InvalidRequestMethodError {
	return &InvalidRequestMethodError{Method: method}
}

func (e *InvalidRequestMethodError) Error() string {
	return fmt.Sprintf("invalid request method %q", e.Method)
}

type InvalidRemoteAddressError struct {
	Address string
}

func NewInvalidRemoteAddressError(address string) *InvalidRemoteAddressError {
	return &InvalidRemoteAddressError{Address: address}
}

func (e *InvalidRemoteAddressError) Error() string {
	return fmt.Sprintf("remote address %q is not allowed", e.Address)
}

type BadSignatureError struct{}

func NewBadSignatureError() *BadSignatureError {
	return &BadSignatureError{}
}

func (e *BadSignatureError) Error() string {
	return "notification signature mismatch"
}

type InvalidTransactionDataError struct{}

func NewInvalidTransactionDataError() *InvalidTransactionDataError {
	return &InvalidTransactionDataError{}
}

func (e *InvalidTransactionDataError) Error() string {
	return "invalid transaction data"
}

type InvalidCurrencyError struct {
	Got  string
	Want string
}

func NewInvalidCurrencyError(got, want string) *InvalidCurrencyError {
	return &InvalidCurrencyError{Got: got, Want: want}
}

func (e *InvalidCurrencyError) Error() string {
	return fmt.Sprintf("invalid transaction currency %q, expected %q", e.Got, e.Want)
}

type InvalidReceiverError struct {
	Receiver string
}

func NewInvalidReceiverError(receiver string) *InvalidReceiverError {
	return &InvalidReceiverError{Receiver: receiver}
}

func (e *InvalidReceiverError) Error() string {
	return fmt.Sprintf("invalid payment receiver %q", e.Receiver)
}

type InvalidProjectError struct {
	ProjectID int64
}

func NewInvalidProjectError(projectID int64) *InvalidProjectError {
	return &InvalidProjectError{ProjectID: projectID}
}

func (e *InvalidProjectError) Error() string {
	return fmt.Sprintf("project %d not found", e.ProjectID)
}

type SessionNotFoundError struct {
	OrderID string
}

func NewSessionNotFoundError(orderID string) *SessionNotFoundError {
	return &SessionNotFoundError{OrderID: orderID}
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("payment session for order %q not found", e.OrderID)
}

type OrderIDAlreadyBoundError struct {
	OrderID string
}

func NewOrderIDAlreadyBoundError(orderID string) *OrderIDAlreadyBoundError {
	return &OrderIDAlreadyBoundError{OrderID: orderID}
}

func (e *OrderIDAlreadyBoundError) Error() string {
	return fmt.Sprintf("payment session already bound to order %q", e.OrderID)
}

type StorageFailureError struct {
	Err error
}

func NewStorageFailureError(err error) *StorageFailureError {
	return &StorageFailureError{Err: err}
}

func (e *StorageFailureError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.Err)
}

func (e *StorageFailureError) Unwrap() error {
	return e.Err
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
