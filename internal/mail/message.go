package mail

// Message is a composed contact email ready for delivery. TextBody is always
// present; HTMLBody is empty when rich rendering was unavailable.
type Message struct {
	Subject  string
	TextBody string
	HTMLBody string
	From     string
	To       string
	ReplyTo  string
}
