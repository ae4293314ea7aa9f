package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdcheck/pkg/locale"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lang string
		want string
	}{
		{name: "empty defaults to english", lang: "", want: "en"},
		{name: "english", lang: "en", want: "en"},
		{name: "english region", lang: "en-GB", want: "en"},
		{name: "japanese", lang: "ja", want: "ja"},
		{name: "japanese region", lang: "ja-JP", want: "ja"},
		{name: "unsupported falls back to english", lang: "fr", want: "en"},
		{name: "garbage falls back to english", lang: "!!", want: "en"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, locale.Lookup(testCase.lang).Code())
		})
	}
}

func TestSupported(t *testing.T) {
	t.Parallel()

	assert.True(t, locale.Supported("ja"))
	assert.True(t, locale.Supported("en-US"))
	assert.False(t, locale.Supported("not a tag"))
}

func TestCatalogsAreComplete(t *testing.T) {
	t.Parallel()

	for _, catalog := range []*locale.Catalog{&locale.English, &locale.Japanese} {
		assert.NotEmpty(t, catalog.HeadingSpacef)
		assert.NotEmpty(t, catalog.TrailingWhitespace)
		assert.NotEmpty(t, catalog.TodoFoundf)
		assert.NotEmpty(t, catalog.SectionRules)
		assert.NotEmpty(t, catalog.NoIssues)
		assert.NotEmpty(t, catalog.MalformedResponse)
		assert.NotEmpty(t, catalog.NoIssuesItem)
		assert.NotEmpty(t, catalog.LanguageName)
	}
}
