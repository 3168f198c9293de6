package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tenerify/tenerify/internal/domain"
)

var offTopicMessages = map[string]string{
	"es": "Lo siento, pero solo puedo ayudarte con información sobre Tenerife. ¡Intenta buscar actividades, lugares o experiencias para vivir en Tenerife!",
	"en": "Sorry, but I can only help you with information about Tenerife. Try searching for activities, places, or experiences to live in Tenerife!",
	"it": "Mi dispiace, ma posso aiutarti solo con informazioni su Tenerife. Prova a cercare attività, luoghi o esperienze da vivere a Tenerife!",
}

var languageNames = map[string]string{
	"es": "español (Spanish)",
	"en": "inglese (English)",
	"it": "italiano (Italian)",
}

const relevancePromptTemplate = `Analizza la seguente richiesta dell'utente e determina se è correlata a Tenerife (Spagna) o se sta cercando informazioni su altre destinazioni, città o paesi.

Richiesta: "%s"

Rispondi SOLO con un oggetto JSON nel formato: {"is_tenerife_related": true} o {"is_tenerife_related": false}

Considera "is_tenerife_related": true se:
- La richiesta menziona esplicitamente Tenerife o Isole Canarie
- La richiesta è generica su attività o luoghi turistici senza specificare una destinazione (es. "spiagge", "escursioni", "ristoranti")
- La richiesta è vaga ma potrebbe riferirsi a Tenerife nel contesto di un'app dedicata a Tenerife

Considera "is_tenerife_related": false se:
- La richiesta menziona esplicitamente altre città, regioni o paesi (es. "Madrid", "Barcellona", "Roma", "Parigi", "New York")
- La richiesta è chiaramente su una destinazione diversa da Tenerife`

const structuringPromptTemplate = `Sei un assistente di viaggio SUPER esperto per Tenerife, Spagna.
Il tuo obiettivo è prendere i risultati di ricerca forniti (inclusi testi, snippet, possibili link e recensioni) ed estrarre le migliori attività che corrispondono alla richiesta dell'utente.

IMPORTANTE: Tutte le risposte (titoli, descrizioni) DEVONO essere scritte in %s.

DEVI essere il più fedele possibile alle informazioni reali trovate nei risultati di ricerca:
- Non inventare prezzi o valutazioni.
- Non inventare dettagli che non compaiono da nessuna parte nel contesto.
- Se una informazione non è presente, è meglio dire "Dettagli" o "N/A" piuttosto che indovinare.

Restituisci il risultato SOLO come un oggetto JSON valido con una chiave 'results' contenente una lista di attività.
Ogni attività DEVE avere questi campi:
- 'title': string (nome dell'attività, il più vicino possibile al nome reale trovato)
- 'description': string (3-4 frasi concrete basate sui dettagli reali trovati: cosa si fa, per chi è adatta, punti salienti, eventuali note pratiche)
- 'price': string (es. "€50", "Da €30", "Circa €40", "Gratis", oppure "Contattare per il prezzo"). MAI null.
- 'duration': string (es. "2 ore", "Mezza giornata", "Tutto il giorno"; se non è chiaro usa "Durata variabile")
- 'rating': string (usa SOLO valutazioni reali trovate, es. "4.5/5", "4.5 stelle". Se NON trovi alcuna valutazione numerica usa esattamente "N/A".)
- 'location': string (es. "Costa Adeje", "Teide", "Santa Cruz"; se non esplicitata usa una descrizione generica coerente dal contesto)
- 'category': string (es. "Avventura", "Relax", "Cultura", "Acqua", "Natura", "Mirador", "Tramonto")
- 'image_url': string o null (IMPORTANTE: lascia SEMPRE questo campo a null. Le immagini verranno aggiunte automaticamente dal sistema.)
- 'link': string o null (URL alla pagina di prenotazione o informazioni se trovata)

REGOLE SPECIALI PER PREZZI E ATTIVITÀ GRATUITE:
- Se si tratta di un mirador, viewpoint, belvedere, punto panoramico, spiaggia o in generale un luogo pubblico, considera l'attività GRATUITA a meno che non sia chiaramente indicato un biglietto o tour a pagamento; in quel caso imposta 'price' = "Gratis"/"Free" a seconda della lingua.
- Se nei risultati trovi un prezzo CHIARO (es. "from €30", "adult 38€"), usa quel valore adattandolo alla lingua target.
- Se trovi più prezzi leggermente diversi, scegline uno rappresentativo e non inventare numeri nuovi.
- Se non trovi nessun prezzo, usa "Gratis"/"Free" per i luoghi pubblici e altrimenti "Detalles"/"Details"/"Dettagli" a seconda della lingua.

REGOLE PER IL RATING:
- Usa SOLO numeri che trovi nel testo (es. "4.8 su Google", "valutazione 4.5", "4,7 stelle").
- Formato consigliato: "4.5/5" oppure "4.5 stelle".
- Se trovi più valutazioni, scegline una rappresentativa, preferibilmente Google o TripAdvisor.
- Se NON trovi alcun numero di valutazione, usa esattamente "N/A".

Restituisci 10 attività rilevanti. Non includere formattazione markdown o spiegazioni, SOLO il JSON.`

const imagePickPromptTemplate = `Analizza questa attività a Tenerife e scegli la categoria di immagine più appropriata dalla lista disponibile.

ATTIVITÀ:
Titolo: %s
Descrizione: %s
Categoria: %s
Località: %s

CATEGORIE IMMAGINI DISPONIBILI:
%s

REGOLE:
1. Scegli la categoria che meglio rappresenta l'attività principale
2. Se l'attività menziona un luogo specifico (es. Teide, Anaga, Masca), privilegia quella categoria
3. Se menziona un'attività specifica (es. delfini, parapendio, Siam Park), usa quella categoria
4. Rispondi SOLO con il nome della categoria scelta, niente altro

Categoria scelta:`

const mockSearchContext = `Mock Search Results for Tenerife:
1. Teide National Park Stargazing Tour. Price: 50 EUR. Description: Watch the stars from the highest peak in Spain. Link: https://example.com/teide
2. Whale Watching Catamaran. Price: 35 EUR. Description: See whales and dolphins in their natural habitat. Link: https://example.com/whales
3. Siam Park Tickets. Price: 40 EUR. Description: The best water park in the world. Link: https://example.com/siam
4. Masca Valley Hike. Price: Free (Guide optional 20 EUR). Description: Beautiful hike in a deep ravine. Link: https://example.com/masca`

// SearchInteractor implements SearchUseCase over the web-search and
// language-model ports. Both ports degrade gracefully: with no API keys the
// pipeline still answers with demo data.
type SearchInteractor struct {
	search WebSearcher
	ai     Completer
	logger *slog.Logger
}

func NewSearchInteractor(search WebSearcher, ai Completer, logger *slog.Logger) *SearchInteractor {
	return &SearchInteractor{search: search, ai: ai, logger: logger}
}

// ProcessQuery runs the activity search pipeline.
func (i *SearchInteractor) ProcessQuery(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	query := req.Query

	// Predefined suggestions always target the island.
	if req.IsSuggestion && !strings.Contains(strings.ToLower(query), "tenerife") {
		query = query + " a Tenerife"
		i.logger.Info("suggestion query enhanced", "query", query)
	}

	if !req.IsSuggestion && !i.isTenerifeRelated(ctx, query) {
		message, ok := offTopicMessages[req.Language]
		if !ok {
			message = offTopicMessages["es"]
		}
		return &domain.SearchResponse{
			Results:  []domain.ActivityResult{},
			OffTopic: true,
			Message:  message,
		}, nil
	}

	searchContext := i.searchWeb(ctx, fmt.Sprintf("Tenerife activities: %s", query))
	reviewsContext := i.searchWeb(ctx, fmt.Sprintf("Tenerife %s recensioni Google valutazione stelle rating TripAdvisor", query))

	if !i.ai.Enabled() {
		i.logger.Info("no OpenAI API key, using mock search response")
		return mockSearchResponse(), nil
	}

	targetLanguage, ok := languageNames[req.Language]
	if !ok {
		targetLanguage = languageNames["es"]
	}

	systemPrompt := fmt.Sprintf(structuringPromptTemplate, targetLanguage)
	userPrompt := fmt.Sprintf(
		"Richiesta Utente: %s\n\nRisultati Ricerca Attività:\n%s\n\nRisultati Ricerca Recensioni e Valutazioni:\n%s",
		query, searchContext, reviewsContext,
	)

	raw, err := i.ai.CompleteJSON(ctx, systemPrompt, userPrompt, 0.7)
	if err != nil {
		i.logger.Error("search structuring failed, using mock response", "error", err)
		return mockSearchResponse(), nil
	}

	var response domain.SearchResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		i.logger.Error("invalid JSON from search model, using mock response", "error", err)
		return mockSearchResponse(), nil
	}

	for idx := range response.Results {
		response.Results[idx].ImageURL = i.findActivityImage(ctx, &response.Results[idx])
	}

	return &response, nil
}

// isTenerifeRelated asks the model whether the query targets Tenerife.
// Permissive on any failure so a flaky provider never blocks searches.
func (i *SearchInteractor) isTenerifeRelated(ctx context.Context, query string) bool {
	if !i.ai.Enabled() {
		return true
	}

	raw, err := i.ai.CompleteJSON(ctx, "", fmt.Sprintf(relevancePromptTemplate, query), 0.3)
	if err != nil {
		i.logger.Error("relevance check failed, allowing query", "error", err)
		return true
	}

	var result struct {
		IsTenerifeRelated *bool `json:"is_tenerife_related"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil || result.IsTenerifeRelated == nil {
		return true
	}

	i.logger.Info("query relevance check", "query", query, "related", *result.IsTenerifeRelated)
	return *result.IsTenerifeRelated
}

// searchWeb fetches a formatted search context, substituting mock data when
// the provider is disabled or fails.
func (i *SearchInteractor) searchWeb(ctx context.Context, query string) string {
	if !i.search.Enabled() {
		i.logger.Info("no Tavily API key, using mock search data")
		return mockSearchContext
	}

	context, err := i.search.SearchContext(ctx, query)
	if err != nil {
		i.logger.Error("web search failed, using mock search data", "query", query, "error", err)
		return mockSearchContext
	}
	if context == "" {
		return mockSearchContext
	}
	return context
}

// findActivityImage resolves an image for one activity: online image search
// first, then an AI pick from the bundled photo sets, then plain keyword
// matching.
func (i *SearchInteractor) findActivityImage(ctx context.Context, activity *domain.ActivityResult) string {
	if i.search.Enabled() {
		query := strings.TrimSpace(fmt.Sprintf("Tenerife %s %s", activity.Title, activity.Location))
		imageURL, err := i.search.SearchImage(ctx, query)
		if err != nil {
			i.logger.Error("image search failed", "title", activity.Title, "error", err)
		} else if imageURL != "" {
			return imageURL
		}
	}

	return i.pickSmartLocalImage(ctx, activity)
}

// pickSmartLocalImage lets the model choose a bundled photo set, validating
// its answer against the catalog before trusting it.
func (i *SearchInteractor) pickSmartLocalImage(ctx context.Context, activity *domain.ActivityResult) string {
	if !i.ai.Enabled() {
		return PickLocalImage(activity.Title, activity.Category, activity.Location)
	}

	prompt := fmt.Sprintf(imagePickPromptTemplate,
		activity.Title, activity.Description, activity.Category, activity.Location,
		strings.Join(imageCategories, ", "),
	)

	answer, err := i.ai.CompleteText(ctx, prompt, 0.2, 20)
	if err != nil {
		i.logger.Error("image category pick failed", "title", activity.Title, "error", err)
		return PickLocalImage(activity.Title, activity.Category, activity.Location)
	}

	selected := strings.ToLower(strings.TrimSpace(answer))
	if !IsImageCategory(selected) {
		i.logger.Info("model picked unknown image category", "category", selected)
		return PickLocalImage(activity.Title, activity.Category, activity.Location)
	}

	return localImagePath(selected)
}

func mockSearchResponse() *domain.SearchResponse {
	return &domain.SearchResponse{
		Results: []domain.ActivityResult{
			{
				Title:       "Osservazione delle Stelle sul Teide (Demo)",
				Description: "Vivi l'esperienza del cielo notturno dal Parco Nazionale del Teide, uno dei migliori luoghi al mondo per l'osservazione delle stelle.",
				Price:       "€55",
				Duration:    "4 ore",
				Rating:      "4.8/5",
				Location:    "Parco Nazionale del Teide",
				Category:    "Natura",
			},
			{
				Title:       "Tour di Avvistamento Balene (Demo)",
				Description: "Osserva delfini e balene su un catamarano di lusso lungo la costa di Tenerife.",
				Price:       "€40",
				Duration:    "3 ore",
				Rating:      "4.7/5",
				Location:    "Costa Adeje",
				Category:    "Mare",
			},
			{
				Title:       "Siam Park (Demo)",
				Description: "Visita il parco acquatico famoso in tutto il mondo con scivoli emozionanti e attrazioni per tutte le età.",
				Price:       "€38",
				Duration:    "Tutto il giorno",
				Rating:      "4.9/5",
				Location:    "Costa Adeje",
				Category:    "Divertimento",
			},
		},
	}
}
