package messaging

// Channel канал доставки сообщения
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// IsValid проверяет, что канал поддерживается шлюзом
func (c Channel) IsValid() bool {
	return c == ChannelSMS || c == ChannelWhatsApp
}

// SendRequest тело запроса к шлюзу
type SendRequest struct {
	To      string  `json:"to"`
	Channel Channel `json:"channel"`
	Text    string  `json:"text"`
}

// SendResponse ответ шлюза
type SendResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
