package link

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	type want struct {
		cleanedPath      string
		webURL           string
		hasYouTubeDomain bool
		isRoot           bool
	}
	tests := []struct {
		name     string
		rawPath  string
		rawQuery string
		want     want
	}{
		{
			name:     "watch path without domain",
			rawPath:  "/watch",
			rawQuery: "v=abc123",
			want: want{
				cleanedPath: "watch?v=abc123",
				webURL:      "https://www.youtube.com/watch?v=abc123",
			},
		},
		{
			name:     "short link with timestamp",
			rawPath:  "/youtu.be/abc123",
			rawQuery: "t=5",
			want: want{
				cleanedPath:      "youtu.be/abc123?t=5",
				webURL:           "https://youtu.be/abc123?t=5",
				hasYouTubeDomain: true,
			},
		},
		{
			name:     "full https url as path",
			rawPath:  "/https://www.youtube.com/watch",
			rawQuery: "v=abc123",
			want: want{
				cleanedPath:      "www.youtube.com/watch?v=abc123",
				webURL:           "https://www.youtube.com/watch?v=abc123",
				hasYouTubeDomain: true,
			},
		},
		{
			name:    "scheme with single slash tolerated",
			rawPath: "/https:/youtu.be/xyz",
			want: want{
				cleanedPath:      "youtu.be/xyz",
				webURL:           "https://youtu.be/xyz",
				hasYouTubeDomain: true,
			},
		},
		{
			name:    "duplicate slashes collapsed",
			rawPath: "//channel//UCabc",
			want: want{
				cleanedPath: "channel/UCabc",
				webURL:      "https://www.youtube.com/channel/UCabc",
			},
		},
		{
			name:    "leading slash run stripped",
			rawPath: "///shorts/dQw4w9WgXcQ",
			want: want{
				cleanedPath: "shorts/dQw4w9WgXcQ",
				webURL:      "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			},
		},
		{
			name:    "empty path maps to root sentinel",
			rawPath: "/",
			want: want{
				webURL: YouTubeWeb,
				isRoot: true,
			},
		},
		{
			name:    "dotfile path maps to root sentinel",
			rawPath: "/.env",
			want: want{
				webURL: YouTubeWeb,
				isRoot: true,
			},
		},
		{
			name:    "scheme only maps to root sentinel",
			rawPath: "/https://",
			want: want{
				webURL: YouTubeWeb,
				isRoot: true,
			},
		},
		{
			name:    "slash run only maps to root sentinel",
			rawPath: "///",
			want: want{
				webURL: YouTubeWeb,
				isRoot: true,
			},
		},
		{
			name:    "dotfile behind slash run maps to root sentinel",
			rawPath: "//.env.local",
			want: want{
				webURL: YouTubeWeb,
				isRoot: true,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.rawPath, tt.rawQuery)

			assert.Equal(t, tt.want.cleanedPath, got.CleanedPath)
			assert.Equal(t, tt.want.webURL, got.WebURL)
			assert.Equal(t, tt.want.hasYouTubeDomain, got.HasYouTubeDomain)
			assert.Equal(t, tt.want.isRoot, got.IsRoot())
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []struct {
		rawPath  string
		rawQuery string
	}{
		{"/watch", "v=abc123"},
		{"/youtu.be/abc123", "t=5"},
		{"/https://www.youtube.com/playlist", "list=PLx"},
		{"//shorts//dQw4w9WgXcQ", ""},
	}
	for _, in := range inputs {
		once := Normalize(in.rawPath, in.rawQuery)
		twice := Normalize(once.CleanedPath, "")

		assert.Equal(t, once.CleanedPath, twice.CleanedPath, "input %q %q", in.rawPath, in.rawQuery)
		assert.Equal(t, once.WebURL, twice.WebURL)
	}
}

func TestNormalizeAlwaysAbsolute(t *testing.T) {
	inputs := []string{"/", "/.env", "/watch", "/https://youtube.com//watch", "/whatever/deep/path"}
	for _, raw := range inputs {
		got := Normalize(raw, "")
		assert.True(t, strings.HasPrefix(got.WebURL, "https://"), "input %q produced %q", raw, got.WebURL)
	}
}
