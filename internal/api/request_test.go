package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUserIdea(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{"plain", `{"userIdea":"write a blog"}`, "write a blog", nil},
		{"untrimmed kept", `{"userIdea":"  app  "}`, "  app  ", nil},
		{"surrounding whitespace", " \n{\"userIdea\":\"x\"}\n ", "x", nil},
		{"last duplicate wins", `{"userIdea":"","userIdea":"second"}`, "second", nil},
		{"next line is not blank", `{"userIdea":"\u0085"}`, "\u0085", nil},
		{"missing key", `{"idea":"x"}`, "", errIdeaMissing},
		{"key is case sensitive", `{"UserIdea":"x"}`, "", errIdeaMissing},
		{"null value", `{"userIdea":null}`, "", errIdeaMissing},
		{"false", `{"userIdea":false}`, "", errIdeaMissing},
		{"zero", `{"userIdea":0}`, "", errIdeaMissing},
		{"zero exponent", `{"userIdea":0e10}`, "", errIdeaMissing},
		{"byte order mark", `{"userIdea":"\ufeff"}`, "", errIdeaMissing},
		{"array body", `["x"]`, "", errIdeaMissing},
		{"string body", `"x"`, "", errIdeaMissing},
		{"null body", `null`, "", errNullBody},
		{"true", `{"userIdea":true}`, "", errIdeaNotString},
		{"number", `{"userIdea":1.5}`, "", errIdeaNotString},
		{"huge number", `{"userIdea":1e400}`, "", errIdeaNotString},
		{"object", `{"userIdea":{"a":1}}`, "", errIdeaNotString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeUserIdea([]byte(tt.body))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeUserIdeaRejectsInvalidJSON(t *testing.T) {
	for _, body := range []string{``, `{`, `{"userIdea":"x"} trailing`, `{"userIdea":"x"}{}`} {
		t.Run(body, func(t *testing.T) {
			_, err := decodeUserIdea([]byte(body))
			require.Error(t, err)
			assert.NotErrorIs(t, err, errIdeaMissing)
			assert.NotErrorIs(t, err, errIdeaNotString)
		})
	}
}
