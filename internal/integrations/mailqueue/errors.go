package mailqueue

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("mailqueue: failed to connect to broker")

	// ErrEncode возвращается при ошибке сериализации письма
	ErrEncode = errors.New("mailqueue: failed to encode message")

	// ErrPublish возвращается, когда брокер не принял сообщение
	ErrPublish = errors.New("mailqueue: failed to publish message")

	// ErrInvalidMessage возвращается, когда у письма не указан получатель или шаблон
	ErrInvalidMessage = errors.New("mailqueue: invalid message")
)
