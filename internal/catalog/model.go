package catalog

// Category groups the menu's top-level sections. Names are keyed by
// language code.
type Category struct {
	ID     string            `json:"id"`
	Names  map[string]string `json:"names"`
	Order  int               `json:"order"`
	Hidden bool              `json:"hidden"`
}

type Subcategory struct {
	ID         string            `json:"id"`
	CategoryID string            `json:"categoryId"`
	Names      map[string]string `json:"names"`
	Order      int               `json:"order"`
	Hidden     bool              `json:"hidden"`
}

// MenuItem is a sellable dish. Prices are integer cents; allergen,
// supplement and side dish references are id lists into their tables.
type MenuItem struct {
	ID            string            `json:"id"`
	SubcategoryID string            `json:"subcategoryId"`
	Names         map[string]string `json:"names"`
	Descriptions  map[string]string `json:"descriptions"`
	PriceCents    int               `json:"priceCents"`
	Order         int               `json:"order"`
	Hidden        bool              `json:"hidden"`
	AllergenIDs   []string          `json:"allergenIds"`
	SupplementIDs []string          `json:"supplementIds"`
	SideDishIDs   []string          `json:"sideDishIds"`
	Photo         string            `json:"photo"`
}

type Allergen struct {
	ID    string            `json:"id"`
	Names map[string]string `json:"names"`
}

type Supplement struct {
	ID         string            `json:"id"`
	Names      map[string]string `json:"names"`
	PriceCents int               `json:"priceCents"`
}

type SideDish struct {
	ID         string            `json:"id"`
	Names      map[string]string `json:"names"`
	PriceCents int               `json:"priceCents"`
}

// CategoryPatch is a partial category update; nil fields stay untouched.
type CategoryPatch struct {
	Names  *map[string]string `json:"names,omitempty"`
	Order  *int               `json:"order,omitempty"`
	Hidden *bool              `json:"hidden,omitempty"`
}

type MenuItemPatch struct {
	SubcategoryID *string            `json:"subcategoryId,omitempty"`
	Names         *map[string]string `json:"names,omitempty"`
	Descriptions  *map[string]string `json:"descriptions,omitempty"`
	PriceCents    *int               `json:"priceCents,omitempty"`
	Order         *int               `json:"order,omitempty"`
	Hidden        *bool              `json:"hidden,omitempty"`
	AllergenIDs   *[]string          `json:"allergenIds,omitempty"`
	SupplementIDs *[]string          `json:"supplementIds,omitempty"`
	SideDishIDs   *[]string          `json:"sideDishIds,omitempty"`
	Photo         *string            `json:"photo,omitempty"`
}

func (p CategoryPatch) apply(c *Category) {
	if p.Names != nil {
		c.Names = *p.Names
	}
	if p.Order != nil {
		c.Order = *p.Order
	}
	if p.Hidden != nil {
		c.Hidden = *p.Hidden
	}
}

func (p MenuItemPatch) apply(m *MenuItem) {
	if p.SubcategoryID != nil {
		m.SubcategoryID = *p.SubcategoryID
	}
	if p.Names != nil {
		m.Names = *p.Names
	}
	if p.Descriptions != nil {
		m.Descriptions = *p.Descriptions
	}
	if p.PriceCents != nil {
		m.PriceCents = *p.PriceCents
	}
	if p.Order != nil {
		m.Order = *p.Order
	}
	if p.Hidden != nil {
		m.Hidden = *p.Hidden
	}
	if p.AllergenIDs != nil {
		m.AllergenIDs = *p.AllergenIDs
	}
	if p.SupplementIDs != nil {
		m.SupplementIDs = *p.SupplementIDs
	}
	if p.SideDishIDs != nil {
		m.SideDishIDs = *p.SideDishIDs
	}
	if p.Photo != nil {
		m.Photo = *p.Photo
	}
}

// BoardCategory is the public board view of the menu: non-hidden entries
// only, sorted by their order field at every level.
type BoardCategory struct {
	ID            string             `json:"id"`
	Names         map[string]string  `json:"names"`
	Subcategories []BoardSubcategory `json:"subcategories"`
}

type BoardSubcategory struct {
	ID    string            `json:"id"`
	Names map[string]string `json:"names"`
	Items []MenuItem        `json:"items"`
}
