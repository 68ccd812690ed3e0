// Package format renders bill fields for display.
package format

import (
	"fmt"
	"time"

	"github.com/billed-app/billed-web/internal/models"
)

// French month abbreviations, capitalized, three letters.
var months = [...]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jui",
	"Jui", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

// Date renders a YYYY-MM-DD date as its short localized form,
// e.g. "4 Avr. 04". It returns an error when the date does not parse
// as a calendar date; callers fall back to the raw string so one
// corrupted record never breaks a whole list.
func Date(dateStr string) (string, error) {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return "", fmt.Errorf("unparseable date %q: %w", dateStr, err)
	}
	return fmt.Sprintf("%d %s. %02d", d.Day(), months[d.Month()-1], d.Year()%100), nil
}

// Status renders a bill status as its French label. Unknown statuses
// pass through unchanged.
func Status(status string) string {
	switch status {
	case models.StatusPending:
		return "En attente"
	case models.StatusAccepted:
		return "Accepté"
	case models.StatusRefused:
		return "Refusé"
	default:
		return status
	}
}
