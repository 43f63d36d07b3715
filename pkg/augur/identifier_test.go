package augur

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		ref  string
		want Identifier
	}{
		{"acme/whisper", Identifier{Owner: "acme", Name: "whisper"}},
		{"acme/whisper:v1", Identifier{Owner: "acme", Name: "whisper", Version: "v1"}},
		{"acme/whisper:sha256:abcdef", Identifier{Owner: "acme", Name: "whisper", Version: "sha256:abcdef"}},
	}

	for _, tt := range tests {
		id, err := ParseIdentifier(tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, id, tt.ref)
	}
}

func TestParseIdentifierInvalid(t *testing.T) {
	refs := []string{
		"",
		"whisper",
		"acme/whisper/extra",
		"/whisper",
		"acme/",
		"acme/whisper:",
	}

	for _, ref := range refs {
		_, err := ParseIdentifier(ref)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, ref)
		assert.Contains(t, verr.Message, ref)
	}
}

func TestIdentifierString(t *testing.T) {
	assert.Equal(t, "acme/whisper", Identifier{Owner: "acme", Name: "whisper"}.String())
	assert.Equal(t, "acme/whisper:v1", Identifier{Owner: "acme", Name: "whisper", Version: "v1"}.String())
}
