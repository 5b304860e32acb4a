package error

// GenericError is implemented by every typed error in this package so the
// REST recovery middleware can map them to HTTP responses.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
