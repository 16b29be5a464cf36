// Package jsend builds the {status, data|message} envelope every response is wrapped in.
package jsend

import "gitlab.com/dirk.krummacker/contactbook-service/pkg/model"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Success wraps data in a success envelope. A nil data is omitted from the JSON.
func Success(data any) model.Envelope[any] {
	return model.Envelope[any]{Status: StatusSuccess, Data: data}
}

// Error wraps a message in an error envelope.
func Error(message string) model.Envelope[any] {
	return model.Envelope[any]{Status: StatusError, Message: message}
}
