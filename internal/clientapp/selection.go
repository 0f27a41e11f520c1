package clientapp

import (
	"errors"
	"fmt"
	"strings"

	"gym_backend/internal/models"
)

// ErrNoMatch means the search text matched no client.
var ErrNoMatch = errors.New("ningún cliente coincide con la búsqueda")

// AmbiguousMatchError lists the candidates when the text matched several clients.
type AmbiguousMatchError struct {
	Text       string
	Candidates []models.Client
}

func (e *AmbiguousMatchError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = fmt.Sprintf("%s (#%d)", c.Nombre, c.ID)
	}
	return fmt.Sprintf("%q coincide con varios clientes: %s", e.Text, strings.Join(names, ", "))
}

// SelectOne resolves matches to exactly one client. A single exact
// case-insensitive name match wins over partial matches.
func SelectOne(text string, matches []models.Client) (models.Client, error) {
	switch len(matches) {
	case 0:
		return models.Client{}, ErrNoMatch
	case 1:
		return matches[0], nil
	}

	var exact []models.Client
	for _, c := range matches {
		if strings.EqualFold(strings.TrimSpace(c.Nombre), strings.TrimSpace(text)) {
			exact = append(exact, c)
		}
	}
	if len(exact) == 1 {
		return exact[0], nil
	}
	return models.Client{}, &AmbiguousMatchError{Text: text, Candidates: matches}
}
