// Package catalog holds the static list of navigable destinations shared by
// the sidebar, the command palette, and the dashboard search box.
package catalog

// Entry is one navigable destination. Entries are created once at startup;
// only Locked and Active change afterwards.
type Entry struct {
	ID       string
	Label    string
	Icon     string
	Category string
	Locked   bool
	Active   bool
}

// suggestionCount is how many leading entries the empty-query suggestion
// list contains.
const suggestionCount = 5

// Catalog owns the entry list. It is built once and shared read-only by the
// router and both search surfaces; mutation goes through its methods.
type Catalog struct {
	entries []Entry
}

// New builds the default catalog. Pro-only destinations start locked and are
// unlocked by RecomputeLocked when the subscription plan changes.
func New() *Catalog {
	return &Catalog{
		entries: []Entry{
			{ID: "dashboard", Label: "Dashboard", Icon: "◆", Category: "General"},
			{ID: "verify", Label: "Verify Claim", Icon: "✓", Category: "General"},
			{ID: "history", Label: "History", Icon: "≡", Category: "General"},
			{ID: "account", Label: "Account & Billing", Icon: "@", Category: "Account"},
			{ID: "settings", Label: "Settings", Icon: "⚙", Category: "Account"},
			{ID: "about", Label: "About", Icon: "i", Category: "General"},
			{ID: "batch", Label: "Batch Verify", Icon: "▤", Category: "Pro", Locked: true},
			{ID: "sources", Label: "Source Explorer", Icon: "◎", Category: "Pro", Locked: true},
		},
	}
}

// Entries returns a copy of the catalog entries.
func (c *Catalog) Entries() []Entry {
	dup := make([]Entry, len(c.entries))
	copy(dup, c.entries)
	return dup
}

// Lookup returns the entry with the given id, if present.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// SetActive marks the entry matching id as active and clears the flag on
// every other entry. Unknown ids simply leave no entry active.
func (c *Catalog) SetActive(id string) {
	for i := range c.entries {
		c.entries[i].Active = c.entries[i].ID == id
	}
}

// RecomputeLocked re-derives the Locked flag from the subscription plan.
// Pro-category entries are unlocked for the "pro" plan only.
func (c *Catalog) RecomputeLocked(plan string) {
	pro := plan == "pro"
	for i := range c.entries {
		if c.entries[i].Category == "Pro" {
			c.entries[i].Locked = !pro
		}
	}
}

// Suggestions returns the fixed leading slice of the catalog shown for empty
// search queries. The result does not depend on search corpus contents.
func (c *Catalog) Suggestions() []Entry {
	n := suggestionCount
	if n > len(c.entries) {
		n = len(c.entries)
	}
	dup := make([]Entry, n)
	copy(dup, c.entries[:n])
	return dup
}
