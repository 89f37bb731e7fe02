package notifier

import "errors"

// ErrDelivery побочный эффект (уведомление или письмо) не доставлен.
// Только логируется, основную операцию не откатывает
var ErrDelivery = errors.New("notifier: delivery failed")
