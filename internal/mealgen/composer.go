package mealgen

import "strings"

// Compose joins the selected ingredients into a single meal phrase:
// "Riz", "Riz avec Poulet", "Riz, Poulet et Brocoli". No ingredients
// composes to the empty string.
func Compose(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " avec " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " et " + items[len(items)-1]
	}
}

// Normalize canonicalizes a meal phrase for duplicate comparison: lower
// case, trimmed, inner whitespace collapsed.
func Normalize(meal string) string {
	return strings.ToLower(strings.Join(strings.Fields(meal), " "))
}

// Outcome describes how a suggestion came to be.
type Outcome int

const (
	// Accepted means the meal did not collide with anything already used.
	Accepted Outcome = iota
	// SoftDuplicate means every attempt collided and the last composition
	// was kept anyway, so the slot is not left blank.
	SoftDuplicate
)

// Suggestion is the result of one bounded-retry composition.
type Suggestion struct {
	Meal    string
	Outcome Outcome
}

// composeUnique pulls one ingredient per category (in order) and composes
// a meal, retrying up to maxAttempts until the result is not already in
// used. When every attempt collides the last composition is returned as a
// SoftDuplicate; strict callers turn that into a failure, lenient callers
// keep it.
func composeUnique(rotations map[string]*Rotation, categories []string, used map[string]struct{}, maxAttempts int) Suggestion {
	var last string
	for attempt := 0; attempt < maxAttempts; attempt++ {
		picks := make([]string, 0, len(categories))
		for _, name := range categories {
			rot, ok := rotations[name]
			if !ok {
				continue
			}
			if item, ok := rot.Next(); ok {
				picks = append(picks, item)
			}
		}
		last = Compose(picks)
		if _, seen := used[Normalize(last)]; !seen {
			return Suggestion{Meal: last, Outcome: Accepted}
		}
	}
	return Suggestion{Meal: last, Outcome: SoftDuplicate}
}
