package server

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"nougat/pkg/schema"
)

// POST /nougat/cards
func (s *Server) handleCards(c echo.Context) error {
	set, req, err := synthesize[schema.CardSet](c, s, cardsPrompt, schema.FlashcardResponseFormat())
	if err != nil {
		return err
	}

	set.Cards = filterCards(set.Cards, req.Text)
	if req.Count > 0 && len(set.Cards) > req.Count {
		set.Cards = set.Cards[:req.Count]
	}
	return c.JSON(http.StatusOK, set)
}

// filterCards drops cards whose fill-in-the-blank excerpt cannot be found in
// the source text once the blank is restored. The prompt demands verbatim
// excerpts; the model does not always comply.
func filterCards(cards []schema.Flashcard, source string) []schema.Flashcard {
	norm := normalize(source)
	out := make([]schema.Flashcard, 0, len(cards))
	for _, card := range cards {
		if strings.TrimSpace(card.Front) == "" {
			continue
		}
		excerpt := card.Back.FillInBlank
		if excerpt != "" {
			restored := normalize(strings.ReplaceAll(excerpt, "___", card.Front))
			if !strings.Contains(norm, restored) {
				log.Debug("dropping card with non-verbatim excerpt", "front", card.Front)
				continue
			}
		}
		out = append(out, card)
	}
	return out
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
