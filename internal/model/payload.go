package model

// Location is a GPS coordinate pair delivered by the messaging transport.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Inbound is one user event handed to the dispatcher. Exactly one of Text
// or Location is meaningful.
type Inbound struct {
	Text     string
	Location *Location
}

// Button is a single inline keyboard option.
type Button struct {
	Label string
	Data  string
}

// Response is the payload sent back through the messaging transport.
type Response struct {
	Text    string
	Buttons [][]Button
}
