package service

import (
	"encoding/base64"
	"encoding/json"
	"net/url"

	"github.com/mvdwal/festival-companion/entity"
)

// ShareService turns one person's favorites into a URL-transportable token
// and back. JSON is percent-encoded before base64 so arbitrary Unicode in
// names survives the byte-oriented encoder.
type ShareService struct{}

func NewShareService() *ShareService {
	return &ShareService{}
}

func (s *ShareService) Encode(payload *entity.SharePayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", &entity.EncodingError{Reason: err.Error()}
	}

	escaped := url.QueryEscape(string(data))
	return base64.RawURLEncoding.EncodeToString([]byte(escaped)), nil
}

// Decode reverses Encode. It returns nil on any malformation: bad base64,
// bad percent escapes, invalid JSON, or a payload whose name is not a string
// or whose favorites is not an array. An empty favorites array is valid; the
// caller decides how to surface "nothing to import".
func (s *ShareService) Decode(token string) *entity.SharePayload {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		// Older links used the standard alphabet with padding.
		raw, err = base64.StdEncoding.DecodeString(token)
		if err != nil {
			return nil
		}
	}

	unescaped, err := url.QueryUnescape(string(raw))
	if err != nil {
		return nil
	}

	var probe struct {
		Name      *string   `json:"name"`
		Favorites *[]string `json:"favorites"`
	}
	if err := json.Unmarshal([]byte(unescaped), &probe); err != nil {
		return nil
	}
	if probe.Name == nil || probe.Favorites == nil {
		return nil
	}

	return &entity.SharePayload{Name: *probe.Name, Favorites: *probe.Favorites}
}
