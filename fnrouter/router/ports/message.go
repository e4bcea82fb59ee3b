package routerports

// FunctionCall is the directive a model emits to request a function: a name
// and its arguments as JSON text.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is an upstream model reply. It is either a PlainMessage or a
// FunctionCallMessage.
type Message interface {
	// Text returns the free-text content of the reply.
	Text() string

	isMessage()
}

// PlainMessage is a reply without a function call.
type PlainMessage struct {
	Content string
}

func (m PlainMessage) Text() string { return m.Content }
func (PlainMessage) isMessage()     {}

// FunctionCallMessage is a reply carrying a function call directive.
type FunctionCallMessage struct {
	Content string
	Call    FunctionCall
}

func (m FunctionCallMessage) Text() string { return m.Content }
func (FunctionCallMessage) isMessage()     {}

// NewMessage picks the variant based on whether call is set.
func NewMessage(content string, call *FunctionCall) Message {
	if call == nil {
		return PlainMessage{Content: content}
	}
	return FunctionCallMessage{Content: content, Call: *call}
}

var (
	_ Message = PlainMessage{}
	_ Message = FunctionCallMessage{}
)
