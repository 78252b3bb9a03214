package services

import "fmt"

// NotFoundError -> entity dengan id tersebut tidak ada (HTTP 404)
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d cannot be found.", e.Resource, e.ID)
}

// RequestError -> precondition dari caller tidak terpenuhi (HTTP 400)
type RequestError struct {
	Msg string
}

func (e *RequestError) Error() string {
	return e.Msg
}

// ConflictError -> kalah balapan dengan request lain (HTTP 409)
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}
