package websocket

import "errors"

// ErrClientQueueFull возвращается, когда буфер отправки клиента переполнен
var ErrClientQueueFull = errors.New("client message queue is full")
