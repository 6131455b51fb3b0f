package endpoints

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cidadeviva/edu-admissions/pkg/server"
	"github.com/cidadeviva/edu-admissions/pkg/server/middleware"
)

// RegisterInsightsEndpoints registers the motivation-text insights
// endpoint
func RegisterInsightsEndpoints(s *server.Server, sessionMW *middleware.SessionAuthenticator) {
	insightsRouter := s.Router.PathPrefix("/insights").Subrouter()
	insightsRouter.Use(sessionMW.Middleware)

	// GET /insights/words?top=N - Most frequent motivation words
	insightsRouter.HandleFunc("/words", handleWordInsights(s)).Methods("GET")
}

type wordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// stopWords are skipped in the tally; they dominate every essay and
// carry no signal. Both Portuguese and English, the languages
// applications arrive in.
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "i": true, "in": true,
	"is": true, "it": true, "my": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "with": true,
	"com": true, "da": true, "de": true, "do": true, "e": true,
	"em": true, "eu": true, "na": true, "no": true, "o": true,
	"os": true, "para": true, "por": true, "que": true, "um": true,
	"uma": true,
}

func handleWordInsights(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		top := 20
		if raw := r.URL.Query().Get("top"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 100 {
				respondWithError(w, http.StatusBadRequest, "top must be between 1 and 100")
				return
			}
			top = parsed
		}

		texts, err := s.ApplicationsStore.MotivationTexts()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to read motivation texts")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"words": tallyWords(texts, top),
		})
	}
}

// tallyWords counts word frequency across the texts and returns the
// top n, most frequent first with ties broken alphabetically
func tallyWords(texts []string, n int) []wordCount {
	counts := make(map[string]int)
	for _, text := range texts {
		words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		for _, word := range words {
			if utf8.RuneCountInString(word) < 2 || stopWords[word] {
				continue
			}
			counts[word]++
		}
	}

	tally := make([]wordCount, 0, len(counts))
	for word, count := range counts {
		tally = append(tally, wordCount{Word: word, Count: count})
	}
	sort.Slice(tally, func(i, j int) bool {
		if tally[i].Count != tally[j].Count {
			return tally[i].Count > tally[j].Count
		}
		return tally[i].Word < tally[j].Word
	})
	if len(tally) > n {
		tally = tally[:n]
	}
	return tally
}
