package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickLocalImage_KeywordMatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		title    string
		category string
		location string
		want     string
	}{
		{"Escursione al Teide", "Natura", "Parco Nazionale", "/images/blog/teide-1.jpg"},
		{"Whale Watching Tour", "Mare", "Costa Adeje", "/images/blog/dolphins-1.jpg"},
		{"Siam Park Tickets", "Divertimento", "Costa Adeje", "/images/blog/siam-park-1.jpg"},
		{"Degustazione di vino", "Food", "Tacoronte", "/images/blog/vitigni-1.jpg"},
		{"Tour in quad", "Avventura", "Sud", "/images/blog/quad-1.jpg"},
		{"Giornata a La Laguna", "Cultura", "", "/images/blog/la-laguna-1.jpg"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PickLocalImage(c.title, c.category, c.location),
			"title %q", c.title)
	}
}

func TestPickLocalImage_CategoryFallback(t *testing.T) {
	t.Parallel()

	// No keyword in title or location, so the activity category decides.
	assert.Equal(t, "/images/blog/anaga-1.jpg", PickLocalImage("Tour misterioso", "Natura", ""))
	assert.Equal(t, "/images/blog/eat-1.jpg", PickLocalImage("Esperienza locale", "Food", ""))
}

func TestPickLocalImage_DefaultFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/images/blog/teide-1.jpg", PickLocalImage("Qualcosa di sconosciuto", "Ignota", ""))
}

func TestIsImageCategory(t *testing.T) {
	t.Parallel()

	assert.True(t, IsImageCategory("teide"))
	assert.True(t, IsImageCategory("masca-valley"))
	assert.False(t, IsImageCategory("madrid"))
	assert.False(t, IsImageCategory(""))
}
