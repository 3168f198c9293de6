package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter is a canned Completer.
type fakeCompleter struct {
	enabled   bool
	jsonReply string
	jsonErr   error
	textReply string
	textErr   error
}

func (f *fakeCompleter) Enabled() bool { return f.enabled }

func (f *fakeCompleter) CompleteJSON(_ context.Context, _, _ string, _ float64) (string, error) {
	return f.jsonReply, f.jsonErr
}

func (f *fakeCompleter) CompleteText(_ context.Context, _ string, _ float64, _ int) (string, error) {
	return f.textReply, f.textErr
}

func TestBasicStructure(t *testing.T) {
	t.Parallel()

	content := "Prima parte introduttiva.\n\nSeconda parte.\n\nTerza parte."
	structured := BasicStructure(content)

	intro, ok := structured["intro"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Prima parte introduttiva.", intro["text"])

	sections, ok := structured["sections"].([]any)
	require.True(t, ok)
	require.Len(t, sections, 1)

	section, ok := sections[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Contenuto", section["title"])
	assert.Equal(t, "text", section["type"])
	assert.Equal(t, "Seconda parte.\n\nTerza parte.", section["content"])
}

func TestBasicStructure_SingleParagraph(t *testing.T) {
	t.Parallel()

	structured := BasicStructure("Solo un paragrafo.")

	intro := structured["intro"].(map[string]any)
	assert.Equal(t, "Solo un paragrafo.", intro["text"])

	section := structured["sections"].([]any)[0].(map[string]any)
	assert.Equal(t, "Solo un paragrafo.", section["content"])
}

func TestStructureArticle_DisabledModelFallsBack(t *testing.T) {
	t.Parallel()

	svc := NewStructureService(&fakeCompleter{enabled: false}, discardLogger())

	structured, err := svc.StructureArticle(context.Background(), "Titolo", "Uno.\n\nDue.")
	require.NoError(t, err)
	assert.Contains(t, structured, "intro")
	assert.Contains(t, structured, "sections")
}

func TestStructureArticle_ModelReply(t *testing.T) {
	t.Parallel()

	svc := NewStructureService(&fakeCompleter{
		enabled:   true,
		jsonReply: `{"intro":{"text":"ciao"},"highlights":["uno"]}`,
	}, discardLogger())

	structured, err := svc.StructureArticle(context.Background(), "Titolo", "Testo")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"text": "ciao"}, structured["intro"])
}

func TestStructureArticle_ModelErrorFallsBack(t *testing.T) {
	t.Parallel()

	svc := NewStructureService(&fakeCompleter{
		enabled: true,
		jsonErr: errors.New("rate limited"),
	}, discardLogger())

	structured, err := svc.StructureArticle(context.Background(), "Titolo", "Testo")
	require.NoError(t, err)
	assert.Contains(t, structured, "sections")
}

func TestStructureArticle_BadJSONFallsBack(t *testing.T) {
	t.Parallel()

	svc := NewStructureService(&fakeCompleter{
		enabled:   true,
		jsonReply: "not json at all",
	}, discardLogger())

	structured, err := svc.StructureArticle(context.Background(), "Titolo", "Testo")
	require.NoError(t, err)
	assert.Contains(t, structured, "intro")
}
