package error

import "net/http"

// Session lifecycle errors surfaced by the WhatsApp connection usecase.
type SessionError string

func (err SessionError) Error() string {
	return string(err)
}

func (err SessionError) ErrCode() string {
	return "SESSION_ERROR"
}

func (err SessionError) StatusCode() int {
	return http.StatusBadRequest
}

var (
	ErrWaCLI           = SessionError("whatsapp client is not initialized")
	ErrAlreadyLoggedIn = SessionError("you are already logged in")
	ErrSessionSaved    = SessionError("your session has been saved, please wait to connect 2 minute (abnormal behavior)")
	ErrQrChannel       = SessionError("error when get qr channel")
	ErrReconnect       = SessionError("error when reconnect to whatsapp")
	ErrNotConnected    = SessionError("you are not connected to whatsapp")
)
