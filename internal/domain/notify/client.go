// internal/domain/notify/client.go
package notify

// Client defines an interface for delivering reminder messages to the
// user. This decouples the dispatcher from the concrete bot library.
type Client interface {
	SendMessage(recipientChatID int64, text string) error
}
