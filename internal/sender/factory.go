package sender

import "fmt"

// New creates a sender instance for the configured kind.
func New(kind, botToken, endpoint string, client HTTPClient) (Sender, error) {
	switch kind {
	case "telegram":
		if botToken == "" {
			return nil, fmt.Errorf("telegram sender requires a bot token")
		}
		return NewTelegram(botToken, endpoint, client), nil
	case "stdout", "":
		return NewStdout(), nil
	default:
		return nil, fmt.Errorf("unknown sender kind: %s", kind)
	}
}
