package email

// Provider определяет интерфейс для отправки email.
// Доставка best-effort: ошибка отправки логируется вызывающим кодом
// и не влияет на исход запроса.
type Provider interface {
	// Send отправляет простое email сообщение
	Send(email *Email) error

	// SendPassword отправляет пользователю выданный пароль
	SendPassword(to string, password string) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}

// Email представляет структуру email сообщения
type Email struct {
	To      []string
	Subject string
	Body    string
}
