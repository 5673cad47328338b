package queue

// Queue carries items from the network manager's message handler to
// the presentation layer, which drains it on its own schedule.
type Queue interface {
	Enqueue(item interface{}) error
	ReadAllMessages() ([]interface{}, error)
	Size() int
	ClearQueue() error
}
