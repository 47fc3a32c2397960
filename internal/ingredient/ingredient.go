package ingredient

import "strings"

// MealType identifies one of the two daily meal slots.
type MealType string

const (
	Midi MealType = "midi"
	Soir MealType = "soir"
)

// Valid reports whether m is one of the two known slots.
func (m MealType) Valid() bool {
	return m == Midi || m == Soir
}

// MealFlags says which meal slots a category participates in.
type MealFlags struct {
	Midi bool `json:"midi"`
	Soir bool `json:"soir"`
}

// Enabled reports whether the flag for the given slot is set.
func (f MealFlags) Enabled(meal MealType) bool {
	switch meal {
	case Midi:
		return f.Midi
	case Soir:
		return f.Soir
	}
	return false
}

// Category is a named group of interchangeable ingredients with per-slot
// enable flags. Items are expected to be de-duplicated by the caller
// before insertion; the generation code does not enforce it.
type Category struct {
	Name  string    `json:"name"`
	Meals MealFlags `json:"meals"`
	Items []string  `json:"items"`
}

// Catalog is a user's full ingredient catalog. Order is significant:
// generation walks categories in the order they were added.
type Catalog []Category

// Get returns the category with the given name.
func (c Catalog) Get(name string) (Category, bool) {
	for _, cat := range c {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// Active returns the names of the categories that participate in the given
// meal slot and have at least one item, in catalog order.
func (c Catalog) Active(meal MealType) []string {
	var names []string
	for _, cat := range c {
		if cat.Meals.Enabled(meal) && len(cat.Items) > 0 {
			names = append(names, cat.Name)
		}
	}
	return names
}

// HasItems reports whether at least one category has a non-empty item list.
func (c Catalog) HasItems() bool {
	for _, cat := range c {
		if len(cat.Items) > 0 {
			return true
		}
	}
	return false
}

// Add appends a new category. If a category with the same name already
// exists, its flags are updated and the new items are merged in instead.
func (c *Catalog) Add(cat Category) {
	for i, existing := range *c {
		if existing.Name == cat.Name {
			(*c)[i].Meals = cat.Meals
			c.AddItems(cat.Name, cat.Items)
			return
		}
	}
	*c = append(*c, Category{Name: cat.Name, Meals: cat.Meals, Items: dedupe(cat.Items)})
}

// AddItems merges items into the named category, dropping any that are
// already present (compared case-insensitively, whitespace-trimmed).
// It returns the number of items actually added.
func (c *Catalog) AddItems(name string, items []string) int {
	for i, cat := range *c {
		if cat.Name != name {
			continue
		}
		seen := make(map[string]struct{}, len(cat.Items))
		for _, item := range cat.Items {
			seen[itemKey(item)] = struct{}{}
		}
		added := 0
		for _, item := range items {
			key := itemKey(item)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			(*c)[i].Items = append((*c)[i].Items, strings.TrimSpace(item))
			added++
		}
		return added
	}
	return 0
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		key := itemKey(item)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(item))
	}
	return out
}

func itemKey(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}
