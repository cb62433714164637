package domain

// Media kinds accepted from the transport.
const (
	MediaKindImage = "image"
	MediaKindAudio = "audio"
)

// Media is one downloaded attachment ready to be inlined into a model request.
type Media struct {
	Kind     string
	MimeType string
	Data     []byte
	Caption  string
}

// Part is one element of a model request payload: either text or inline bytes.
type Part struct {
	Text     string
	Data     []byte
	MimeType string
}

// ModelRequest is the full payload for one generation call. The core treats
// the model client as a pure function from this request to reply text.
type ModelRequest struct {
	Temperature        float64
	TopK               float64
	TopP               float64
	MaxOutputTokens    int
	SystemInstructions string
	Parts              []Part
}
