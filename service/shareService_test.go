package service

import (
	"testing"

	"github.com/mvdwal/festival-companion/entity"

	"github.com/stretchr/testify/assert"
)

func TestShareRoundTrip(t *testing.T) {
	s := NewShareService()

	tests := []struct {
		name    string
		payload *entity.SharePayload
	}{
		{
			name: "ascii name",
			payload: &entity.SharePayload{
				Name:      "Alice",
				Favorites: []string{"X|friday|MainStage|20:00", "Y|saturday|Tent|12:00"},
			},
		},
		{
			name: "accented name",
			payload: &entity.SharePayload{
				Name:      "Zoë van Dijk",
				Favorites: []string{"Headliner|friday|MainStage|23:00"},
			},
		},
		{
			name: "emoji name",
			payload: &entity.SharePayload{
				Name:      "Bob 🎉",
				Favorites: []string{"X|friday|MainStage|20:00"},
			},
		},
		{
			name: "empty favorites is valid",
			payload: &entity.SharePayload{
				Name:      "Nobody",
				Favorites: []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := s.Encode(tt.payload)
			assert.NoError(t, err)
			assert.NotEmpty(t, token)

			decoded := s.Decode(token)
			assert.Equal(t, tt.payload, decoded)
		})
	}
}

func TestDecodeRobustness(t *testing.T) {
	s := NewShareService()

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "not base64",
			token: "not-valid-base64!!",
		},
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "base64 of garbage json",
			token: "bm90IGpzb24",
		},
		{
			name:  "json but wrong shape",
			token: "eyJmb28iOiJiYXIifQ",
		},
		{
			name:  "favorites is not an array",
			token: "eyJuYW1lIjoiQSIsImZhdm9yaXRlcyI6MX0",
		},
		{
			name:  "name is not a string",
			token: "eyJuYW1lIjoxLCJmYXZvcml0ZXMiOltdfQ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, s.Decode(tt.token))
		})
	}
}
