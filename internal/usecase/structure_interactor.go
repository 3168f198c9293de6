package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tenerify/tenerify/internal/domain"
)

// Completer is the language-model port shared by the structuring and search
// services.
type Completer interface {
	// Enabled reports whether the provider is configured with an API key.
	Enabled() bool

	// CompleteJSON asks the model for a JSON document.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)

	// CompleteText asks the model for a short plain-text answer.
	CompleteText(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

const structureSystemPrompt = `Sei un esperto di content design e UX per blog di viaggio.
Il tuo compito è analizzare un articolo di blog su Tenerife e strutturarlo in sezioni visivamente accattivanti.

Devi restituire un oggetto JSON con questa struttura:
{
  "intro": {"text": "Paragrafo introduttivo coinvolgente (2-3 frasi)"},
  "highlights": ["Punto chiave 1", "Punto chiave 2", "Punto chiave 3"],
  "sections": [{"title": "Titolo sezione", "content": "Contenuto della sezione", "type": "text"}],
  "tips": [{"title": "Consiglio pratico", "text": "Descrizione del consiglio"}],
  "conclusion": {"text": "Paragrafo conclusivo che riassume e invita all'azione"}
}

REGOLE:
- Intro: deve essere accattivante e catturare l'attenzione
- Highlights: 3-5 punti chiave dell'articolo in frasi brevi
- Sections: suddividi il contenuto in 3-6 sezioni logiche con titoli descrittivi
- Tips: estrai 2-4 consigli pratici se presenti nel testo
- Conclusion: riassunto che inviti il lettore a visitare o esplorare
- Mantieni il tono italiano informale ma professionale
- Se il contenuto non ha abbastanza materiale per una sezione, omettila

Restituisci SOLO il JSON, senza markdown o spiegazioni.`

// StructureService organizes raw article text into the structured-content
// document. When the language model is unavailable it falls back to a plain
// paragraph split.
type StructureService struct {
	ai     Completer
	logger *slog.Logger
}

func NewStructureService(ai Completer, logger *slog.Logger) *StructureService {
	return &StructureService{ai: ai, logger: logger}
}

// StructureArticle implements ArticleStructurer.
func (s *StructureService) StructureArticle(ctx context.Context, title, content string) (domain.JSONMap, error) {
	if !s.ai.Enabled() {
		s.logger.Info("no OpenAI API key, using basic article structure")
		return BasicStructure(content), nil
	}

	userPrompt := fmt.Sprintf("Titolo: %s\n\nContenuto:\n%s", title, content)

	raw, err := s.ai.CompleteJSON(ctx, structureSystemPrompt, userPrompt, 0.7)
	if err != nil {
		s.logger.Error("article structuring failed, using basic structure", "error", err)
		return BasicStructure(content), nil
	}

	var structured domain.JSONMap
	if err := json.Unmarshal([]byte(raw), &structured); err != nil {
		s.logger.Error("invalid JSON from structuring model, using basic structure", "error", err)
		return BasicStructure(content), nil
	}
	return structured, nil
}

// BasicStructure splits content on blank lines: the first paragraph becomes
// the intro, everything else lands in a single section.
func BasicStructure(content string) domain.JSONMap {
	var paragraphs []string
	for _, p := range strings.Split(content, "\n\n") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}

	intro := ""
	if len(paragraphs) > 0 {
		intro = paragraphs[0]
	}

	body := content
	if len(paragraphs) > 1 {
		body = strings.Join(paragraphs[1:], "\n\n")
	}

	return domain.JSONMap{
		"intro":      map[string]any{"text": intro},
		"highlights": []any{},
		"sections": []any{
			map[string]any{
				"title":   "Contenuto",
				"content": body,
				"type":    "text",
			},
		},
		"tips":       []any{},
		"conclusion": map[string]any{"text": ""},
	}
}
