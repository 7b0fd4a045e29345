package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"nougat/pkg/schema"
	"nougat/pkg/utils"
)

// POST /nougat/keyterms
func (s *Server) handleKeyTerms(c echo.Context) error {
	set, req, err := synthesize[schema.KeyTermSet](c, s, keyTermsPrompt, schema.KeyTermResponseFormat())
	if err != nil {
		return err
	}

	set.Terms = dedupeTerms(set.Terms)
	if req.Count > 0 && len(set.Terms) > req.Count {
		set.Terms = set.Terms[:req.Count]
	}
	return c.JSON(http.StatusOK, set)
}

// dedupeTerms collapses near-duplicate keywords ("Mitochondria" vs
// "mitochondria", trailing plurals, typos) keeping the first occurrence.
func dedupeTerms(terms []schema.KeyTerm) []schema.KeyTerm {
	out := make([]schema.KeyTerm, 0, len(terms))
Next:
	for _, t := range terms {
		t.Term = strings.TrimSpace(t.Term)
		if t.Term == "" {
			continue
		}
		for i, kept := range out {
			if utils.Similarity(kept.Term, t.Term) >= 0.85 {
				if kept.Significance == "" && t.Significance != "" {
					out[i].Significance = t.Significance
				}
				continue Next
			}
		}
		out = append(out, t)
	}
	return out
}
