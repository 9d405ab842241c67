package menu

import (
	"fmt"
	"sort"
	"strings"

	"sophia-orders/internal/model"
)

// Catalog is the immutable, indexed view of the restaurant menu. It is built
// once at startup and read concurrently without locking.
type Catalog struct {
	config       *model.RestaurantConfig
	items        []model.MenuItem
	byID         map[string]model.MenuItem
	categoryByID map[string]string

	// Keyword index. keywords preserves first-appearance order so matching is
	// deterministic; keywordToItem resolves collisions last-write-wins in
	// catalog declaration order.
	keywords      []string
	keywordToItem map[string]string

	allergens []string
	tags      []string
}

// SearchCriteria filters the catalog. Zero-value criteria match everything.
type SearchCriteria struct {
	ExcludeAllergens []string
	RequiredTags     []string
	MaxPrice         *float64
}

// PromptCategory is the menu projection serialized into the LLM system prompt.
type PromptCategory struct {
	Category string       `json:"category"`
	Items    []PromptItem `json:"items"`
}

// PromptItem is a single item in the prompt projection.
type PromptItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Allergens   []string `json:"allergens"`
	Tags        []string `json:"tags"`
}

// New builds a catalog from a restaurant config. Item IDs must be unique
// across all categories.
func New(cfg *model.RestaurantConfig) (*Catalog, error) {
	c := &Catalog{
		config:        cfg,
		byID:          make(map[string]model.MenuItem),
		categoryByID:  make(map[string]string),
		keywordToItem: make(map[string]string),
	}

	allergenSet := make(map[string]struct{})
	tagSet := make(map[string]struct{})

	for _, cat := range cfg.Categories {
		for _, item := range cat.Items {
			if _, exists := c.byID[item.ID]; exists {
				return nil, fmt.Errorf("duplicate menu item id %q", item.ID)
			}
			c.byID[item.ID] = item
			c.categoryByID[item.ID] = cat.Name
			c.items = append(c.items, item)

			for _, kw := range item.Keywords {
				kw = strings.ToLower(kw)
				if _, seen := c.keywordToItem[kw]; !seen {
					c.keywords = append(c.keywords, kw)
				}
				c.keywordToItem[kw] = item.ID
			}
			for _, a := range item.Allergens {
				allergenSet[a] = struct{}{}
			}
			for _, t := range item.Tags {
				tagSet[t] = struct{}{}
			}
		}
	}

	c.allergens = sortedKeys(allergenSet)
	c.tags = sortedKeys(tagSet)

	return c, nil
}

// Config returns the restaurant config the catalog was built from.
func (c *Catalog) Config() *model.RestaurantConfig {
	return c.config
}

// Lookup returns the menu item with the given ID.
func (c *Catalog) Lookup(id string) (model.MenuItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// CategoryName returns the name of the category owning the given item ID.
func (c *Catalog) CategoryName(itemID string) string {
	return c.categoryByID[itemID]
}

// Items returns all menu items in catalog declaration order.
func (c *Catalog) Items() []model.MenuItem {
	return c.items
}

// AllAllergens returns the sorted set of allergens appearing on the menu.
func (c *Catalog) AllAllergens() []string {
	return c.allergens
}

// AllTags returns the sorted set of dietary tags appearing on the menu.
func (c *Catalog) AllTags() []string {
	return c.tags
}

// MatchKeyword scans the keyword index in declaration order and returns the
// item ID for the first keyword contained in the message. The message must
// already be lower-cased.
func (c *Catalog) MatchKeyword(lowerMessage string) (string, bool) {
	for _, kw := range c.keywords {
		if strings.Contains(lowerMessage, kw) {
			return c.keywordToItem[kw], true
		}
	}
	return "", false
}

// Search returns all items matching the criteria, in declaration order.
// Allergen terms match case-insensitively as substrings of an item's
// allergens; an item is excluded if any allergen matches any term. Required
// tags match case-insensitively and must all be present. Items priced above
// MaxPrice are excluded.
func (c *Catalog) Search(criteria SearchCriteria) []model.MenuItem {
	var results []model.MenuItem

	for _, item := range c.items {
		if hasExcludedAllergen(item, criteria.ExcludeAllergens) {
			continue
		}
		if !hasAllTags(item, criteria.RequiredTags) {
			continue
		}
		if criteria.MaxPrice != nil && item.Price > *criteria.MaxPrice {
			continue
		}
		results = append(results, item)
	}

	return results
}

// ForPrompt returns the category/item projection embedded in the LLM system
// prompt.
func (c *Catalog) ForPrompt() []PromptCategory {
	out := make([]PromptCategory, 0, len(c.config.Categories))
	for _, cat := range c.config.Categories {
		pc := PromptCategory{Category: cat.Name, Items: make([]PromptItem, 0, len(cat.Items))}
		for _, item := range cat.Items {
			pc.Items = append(pc.Items, PromptItem{
				ID:          item.ID,
				Name:        item.Name,
				Price:       item.Price,
				Description: item.Description,
				Allergens:   emptyIfNil(item.Allergens),
				Tags:        emptyIfNil(item.Tags),
			})
		}
		out = append(out, pc)
	}
	return out
}

func hasExcludedAllergen(item model.MenuItem, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	for _, allergen := range item.Allergens {
		lower := strings.ToLower(allergen)
		for _, term := range excluded {
			if strings.Contains(lower, strings.ToLower(term)) {
				return true
			}
		}
	}
	return false
}

func hasAllTags(item model.MenuItem, required []string) bool {
	for _, tag := range required {
		found := false
		for _, t := range item.Tags {
			if strings.EqualFold(t, tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
