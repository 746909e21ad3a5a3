package response

import (
	"jobdesk/internal/pkg/pagination"

	"github.com/gofiber/fiber/v3"
)

// Envelope is the wire format of every endpoint:
// {status: "success"|"fail", message?, data?, pagination?}.
type Envelope struct {
	Status     string           `json:"status"`
	Message    string           `json:"message,omitempty"`
	Data       any              `json:"data,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

const (
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageForbidden           = "forbidden"
	MessageNotFound            = "not found"
	MessageConflict            = "conflict"
	MessageUnprocessableEntity = "unprocessable entity"
	MessageInternalServerError = "internal server error"
)

func Success(c fiber.Ctx, code int, message string, data any) error {
	return c.Status(normalizeCode(code)).JSON(Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

func SuccessPaged(c fiber.Ctx, code int, data any, meta pagination.Meta) error {
	return c.Status(normalizeCode(code)).JSON(Envelope{
		Status:     StatusSuccess,
		Data:       data,
		Pagination: &meta,
	})
}

func Fail(c fiber.Ctx, code int, message string) error {
	code = normalizeCode(code)
	if message == "" {
		message = defaultMessageForStatus(code)
	}
	return c.Status(code).JSON(Envelope{
		Status:  StatusFail,
		Message: message,
	})
}

func normalizeCode(code int) int {
	if code < 100 || code > 599 {
		return fiber.StatusInternalServerError
	}
	return code
}

func defaultMessageForStatus(code int) string {
	switch code {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	default:
		if code >= 500 {
			return MessageInternalServerError
		}
		return "error"
	}
}
