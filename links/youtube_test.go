package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseYouTube(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		reason Reason
	}{
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", ReasonNone},
		{"short link with timestamp", "https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ", ReasonNone},
		{"short link extra segment", "https://youtu.be/dQw4w9WgXcQ/extra", "dQw4w9WgXcQ", ReasonNone},
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", ReasonNone},
		{"watch bare host", "https://youtube.com/watch?v=dQw4w9WgXcQ&list=PL1", "dQw4w9WgXcQ", ReasonNone},
		{"watch mobile", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", ReasonNone},
		{"watch uppercase host", "https://WWW.YouTube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", ReasonNone},
		{"watch with port", "https://www.youtube.com:443/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", ReasonNone},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", ReasonNone},
		{"embed with params", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "dQw4w9WgXcQ", ReasonNone},
		{"legacy v", "http://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", ReasonNone},
		{"escaped query captured in v", "https://www.youtube.com/watch?v=dQw4w9WgXcQ%3Ffeature%3Dshare", "dQw4w9WgXcQ", ReasonNone},
		{"escaped ampersand in path", "https://youtu.be/dQw4w9WgXcQ%26t=1", "dQw4w9WgXcQ", ReasonNone},
		{"surrounding whitespace", "  https://youtu.be/abc_DEF-123 \n", "abc_DEF-123", ReasonNone},

		{"empty", "", "", ReasonEmpty},
		{"whitespace", "   ", "", ReasonEmpty},
		{"garbage", "not a url", "", ReasonMalformed},
		{"missing scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "", ReasonMalformed},
		{"bad escape", "https://youtu.be/%zz", "", ReasonMalformed},
		{"other domain", "https://example.com/video", "", ReasonUnsupportedHost},
		{"lookalike domain", "https://youtube.com.evil.test/watch?v=dQw4w9WgXcQ", "", ReasonUnsupportedHost},
		{"vimeo", "https://vimeo.com/123456", "", ReasonUnsupportedHost},
		{"watch without v", "https://www.youtube.com/watch?list=PL1", "", ReasonNoIdentifier},
		{"channel page", "https://www.youtube.com/@LocalHake", "", ReasonNoIdentifier},
		{"short link no path", "https://youtu.be/", "", ReasonNoIdentifier},
		{"embed no id", "https://www.youtube.com/embed/", "", ReasonNoIdentifier},
		{"bad characters", "https://youtu.be/dQw4w9$WgXcQ", "", ReasonInvalidIdentifier},
		{"bad characters in v", "https://www.youtube.com/watch?v=abc.def", "", ReasonInvalidIdentifier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseYouTube(tt.input)
			assert.Equal(t, tt.reason, got.Reason, "reason for %q", tt.input)
			assert.Equal(t, tt.want, got.Value, "value for %q", tt.input)
		})
	}
}

func TestParseYouTubeMutuallyExclusive(t *testing.T) {
	inputs := []string{
		"", "x", "https://youtu.be/dQw4w9WgXcQ", "https://example.com/video",
		"https://www.youtube.com/watch", "https://youtu.be/a b", "://",
	}
	for _, in := range inputs {
		got := ParseYouTube(in)
		assert.NotEqual(t, got.Value != "", got.Reason != ReasonNone, "exactly one side set for %q", in)
		assert.Equal(t, got, ParseYouTube(in), "repeat call for %q", in)
	}
}

func TestYouTubeEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", YouTubeEmbedURL("dQw4w9WgXcQ"))
}
