package taxonomy

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hpungsan/nutrimind/internal/entry"
)

//go:embed taxonomy.yaml
var rawTaxonomy []byte

// Category is one food group from the embedded taxonomy.
type Category struct {
	Name      string   `yaml:"name" json:"name"`
	Label     string   `yaml:"label" json:"label"`
	Plant     bool     `yaml:"plant" json:"plant"`
	Essential bool     `yaml:"essential" json:"essential"`
	Foods     []string `yaml:"foods" json:"foods"`
}

// Taxonomy is the immutable food-category table. Build once at process
// start and share by pointer; nothing mutates it afterward.
type Taxonomy struct {
	categories []Category
	byName     map[string]int
	vocabulary map[string]bool
	plantVocab map[string]bool
	// tokenCats maps a normalized food token to the names of every category
	// containing it. Foods may belong to more than one category (cebolla is
	// both a vegetable and a prebiotic).
	tokenCats map[string][]string
}

type taxonomyFile struct {
	Categories []Category `yaml:"categories"`
}

// Load parses the embedded taxonomy data.
func Load() (*Taxonomy, error) {
	return Parse(rawTaxonomy)
}

// Parse builds a Taxonomy from YAML bytes. Category names must be unique
// and every category must list at least one food.
func Parse(data []byte) (*Taxonomy, error) {
	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy has no categories")
	}

	t := &Taxonomy{
		categories: file.Categories,
		byName:     make(map[string]int, len(file.Categories)),
		vocabulary: make(map[string]bool),
		plantVocab: make(map[string]bool),
		tokenCats:  make(map[string][]string),
	}

	for i, cat := range file.Categories {
		name := entry.NormalizeToken(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("taxonomy category %d has no name", i)
		}
		if _, dup := t.byName[name]; dup {
			return nil, fmt.Errorf("duplicate taxonomy category %q", name)
		}
		if len(cat.Foods) == 0 {
			return nil, fmt.Errorf("taxonomy category %q has no foods", name)
		}
		t.byName[name] = i

		for _, food := range cat.Foods {
			token := entry.NormalizeToken(food)
			if token == "" {
				return nil, fmt.Errorf("taxonomy category %q has an empty food", name)
			}
			t.vocabulary[token] = true
			if cat.Plant {
				t.plantVocab[token] = true
			}
			t.tokenCats[token] = append(t.tokenCats[token], name)
		}
	}

	return t, nil
}

// Categories returns all categories in file order.
func (t *Taxonomy) Categories() []Category {
	return t.categories
}

// Category looks up a category by name (case-insensitive).
func (t *Taxonomy) Category(name string) (Category, bool) {
	i, ok := t.byName[entry.NormalizeToken(name)]
	if !ok {
		return Category{}, false
	}
	return t.categories[i], true
}

// EssentialCategories returns the categories checked by the daily
// coverage advisory, in file order.
func (t *Taxonomy) EssentialCategories() []Category {
	var out []Category
	for _, cat := range t.categories {
		if cat.Essential {
			out = append(out, cat)
		}
	}
	return out
}

// Vocabulary returns every known food token, sorted.
func (t *Taxonomy) Vocabulary() []string {
	return sortedKeys(t.vocabulary)
}

// PlantVocabulary returns the tokens that count toward the weekly goal,
// sorted. This is the union of the plant-flagged categories only.
func (t *Taxonomy) PlantVocabulary() []string {
	return sortedKeys(t.plantVocab)
}

// Contains reports whether token is anywhere in the taxonomy.
// Matching is exact on the normalized token; substring matching is
// deliberately not offered (it produces false positives like "higo"
// inside "higos de la huerta").
func (t *Taxonomy) Contains(token string) bool {
	return t.vocabulary[entry.NormalizeToken(token)]
}

// IsPlant reports whether token counts toward the weekly diversity goal.
func (t *Taxonomy) IsPlant(token string) bool {
	return t.plantVocab[entry.NormalizeToken(token)]
}

// CategoriesOf returns the names of the categories containing token.
func (t *Taxonomy) CategoriesOf(token string) []string {
	return t.tokenCats[entry.NormalizeToken(token)]
}

// CategoryCovered reports whether any of the tokens belongs to the named
// category.
func (t *Taxonomy) CategoryCovered(name string, tokens []string) bool {
	norm := entry.NormalizeToken(name)
	if _, ok := t.byName[norm]; !ok {
		return false
	}
	for _, token := range tokens {
		for _, cat := range t.tokenCats[entry.NormalizeToken(token)] {
			if cat == norm {
				return true
			}
		}
	}
	return false
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
