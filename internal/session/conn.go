package session

// Conn abstracts the websocket connection so tests can drive a session
// without a network.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}
