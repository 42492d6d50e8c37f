package remote

// Item is the drive API's descriptor of a created folder or uploaded file.
type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	WebURL string `json:"webUrl"`
}

// Message is the messaging API's descriptor of a posted channel message.
type Message struct {
	ID string `json:"id"`
}
