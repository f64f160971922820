package wompi

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("wompi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("wompi client: invalid response")

	// ErrPaymentDeclined возвращается, когда шлюз отклонил создание платежа
	ErrPaymentDeclined = errors.New("wompi client: payment declined")

	// ErrUnauthorized возвращается при неверных ключах доступа
	ErrUnauthorized = errors.New("wompi client: unauthorized")
)
