package entity

// SharePayload is one person's favorites snapshot as exchanged via a share
// link. It only exists in transit and is never persisted as-is.
type SharePayload struct {
	Name      string   `json:"name"`
	Favorites []string `json:"favorites"`
}

// EncodingError means a share payload could not be serialized. Callers
// should prevent this by construction.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return "share payload encoding: " + e.Reason
}
