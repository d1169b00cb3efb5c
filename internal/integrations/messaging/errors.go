package messaging

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("messaging client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("messaging client: invalid response")

	// ErrRejected возвращается, когда шлюз отклонил сообщение (неверный номер, канал и т.п.)
	ErrRejected = errors.New("messaging client: message rejected")

	// ErrUnknownChannel возвращается для неизвестного канала доставки
	ErrUnknownChannel = errors.New("messaging client: unknown channel")

	// ErrUnknownTemplate возвращается для неизвестного шаблона сообщения
	ErrUnknownTemplate = errors.New("messaging: unknown template")
)
