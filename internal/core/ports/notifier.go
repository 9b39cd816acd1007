package ports

// Notification topics delivered to connected clients.
const (
	TopicOrders  = "orders"
	TopicRentals = "rentals"
	TopicCart    = "cart"
)

// Notifier pushes best-effort refresh signals to connected clients.
// A notification to a user with no live connection on the topic is a
// silent no-op; delivery is never guaranteed or retried.
type Notifier interface {
	Notify(userID, topic string)
}
