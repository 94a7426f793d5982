package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/menucraft/menucraft/internal/typeid"
)

var ErrNotFound = errors.New("catalog entry not found")

// Service owns all catalog reads and writes. Bulk updates apply the
// load-patch-store cycle inside one transaction so a partial failure never
// leaves the admin screen half-applied.
type Service struct {
	pool *pgxpool.Pool
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// --- Categories ---

func (s *Service) CreateCategory(ctx context.Context, names map[string]string, order int) (*Category, error) {
	c := &Category{ID: typeid.NewCategoryID(), Names: names, Order: order}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO categories (id, names, ordering, hidden) VALUES ($1, $2, $3, $4)
	`, c.ID, c.Names, c.Order, c.Hidden)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, names, ordering, hidden FROM categories ORDER BY ordering, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Names, &c.Order, &c.Hidden); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateCategories applies a batch of partial updates keyed by category id.
// Unknown ids fail the whole batch.
func (s *Service) UpdateCategories(ctx context.Context, patches map[string]CategoryPatch) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for id, patch := range patches {
		var c Category
		err := tx.QueryRow(ctx, `
			SELECT id, names, ordering, hidden FROM categories WHERE id = $1
		`, id).Scan(&c.ID, &c.Names, &c.Order, &c.Hidden)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("category %q: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("load category %q: %w", id, err)
		}
		patch.apply(&c)
		_, err = tx.Exec(ctx, `
			UPDATE categories SET names = $2, ordering = $3, hidden = $4 WHERE id = $1
		`, c.ID, c.Names, c.Order, c.Hidden)
		if err != nil {
			return fmt.Errorf("update category %q: %w", id, err)
		}
	}
	return tx.Commit(ctx)
}

// DeleteCategories removes the listed categories; subcategories and items
// cascade in the database.
func (s *Service) DeleteCategories(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	return nil
}

// --- Subcategories ---

func (s *Service) CreateSubcategory(ctx context.Context, categoryID string, names map[string]string, order int) (*Subcategory, error) {
	sc := &Subcategory{ID: typeid.NewSubcategoryID(), CategoryID: categoryID, Names: names, Order: order}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO subcategories (id, category_id, names, ordering, hidden)
		VALUES ($1, $2, $3, $4, $5)
	`, sc.ID, sc.CategoryID, sc.Names, sc.Order, sc.Hidden)
	if err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return sc, nil
}

func (s *Service) ListSubcategories(ctx context.Context, categoryID string) ([]Subcategory, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, category_id, names, ordering, hidden
		FROM subcategories
		WHERE ($1 = '' OR category_id = $1)
		ORDER BY ordering, id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	var out []Subcategory
	for rows.Next() {
		var sc Subcategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Names, &sc.Order, &sc.Hidden); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *Service) UpdateSubcategory(ctx context.Context, sc Subcategory) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE subcategories SET category_id = $2, names = $3, ordering = $4, hidden = $5
		WHERE id = $1
	`, sc.ID, sc.CategoryID, sc.Names, sc.Order, sc.Hidden)
	if err != nil {
		return fmt.Errorf("update subcategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) DeleteSubcategory(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}

// --- Menu items ---

const menuItemColumns = `id, subcategory_id, names, descriptions, price_cents, ordering, hidden,
	allergen_ids, supplement_ids, side_dish_ids, photo`

func scanMenuItem(row pgx.Row) (MenuItem, error) {
	var m MenuItem
	err := row.Scan(&m.ID, &m.SubcategoryID, &m.Names, &m.Descriptions, &m.PriceCents,
		&m.Order, &m.Hidden, &m.AllergenIDs, &m.SupplementIDs, &m.SideDishIDs, &m.Photo)
	return m, err
}

func (s *Service) CreateMenuItem(ctx context.Context, item MenuItem) (*MenuItem, error) {
	item.ID = typeid.NewMenuItemID()
	if item.AllergenIDs == nil {
		item.AllergenIDs = []string{}
	}
	if item.SupplementIDs == nil {
		item.SupplementIDs = []string{}
	}
	if item.SideDishIDs == nil {
		item.SideDishIDs = []string{}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO menu_items (`+menuItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, item.ID, item.SubcategoryID, item.Names, item.Descriptions, item.PriceCents,
		item.Order, item.Hidden, item.AllergenIDs, item.SupplementIDs, item.SideDishIDs, item.Photo)
	if err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}
	return &item, nil
}

func (s *Service) ListMenuItems(ctx context.Context, subcategoryID string) ([]MenuItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+menuItemColumns+` FROM menu_items
		WHERE ($1 = '' OR subcategory_id = $1)
		ORDER BY ordering, id
	`, subcategoryID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()
	var out []MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Service) UpdateMenuItems(ctx context.Context, patches map[string]MenuItemPatch) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for id, patch := range patches {
		m, err := scanMenuItem(tx.QueryRow(ctx, `
			SELECT `+menuItemColumns+` FROM menu_items WHERE id = $1
		`, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("menu item %q: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("load menu item %q: %w", id, err)
		}
		patch.apply(&m)
		_, err = tx.Exec(ctx, `
			UPDATE menu_items SET subcategory_id = $2, names = $3, descriptions = $4,
				price_cents = $5, ordering = $6, hidden = $7, allergen_ids = $8,
				supplement_ids = $9, side_dish_ids = $10, photo = $11
			WHERE id = $1
		`, m.ID, m.SubcategoryID, m.Names, m.Descriptions, m.PriceCents, m.Order,
			m.Hidden, m.AllergenIDs, m.SupplementIDs, m.SideDishIDs, m.Photo)
		if err != nil {
			return fmt.Errorf("update menu item %q: %w", id, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *Service) DeleteMenuItems(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete menu items: %w", err)
	}
	return nil
}

// --- Allergens / supplements / side dishes ---

func (s *Service) CreateAllergen(ctx context.Context, names map[string]string) (*Allergen, error) {
	a := &Allergen{ID: typeid.NewAllergenID(), Names: names}
	if _, err := s.pool.Exec(ctx, `INSERT INTO allergens (id, names) VALUES ($1, $2)`, a.ID, a.Names); err != nil {
		return nil, fmt.Errorf("create allergen: %w", err)
	}
	return a, nil
}

func (s *Service) ListAllergens(ctx context.Context) ([]Allergen, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, names FROM allergens ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list allergens: %w", err)
	}
	defer rows.Close()
	var out []Allergen
	for rows.Next() {
		var a Allergen
		if err := rows.Scan(&a.ID, &a.Names); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Service) DeleteAllergen(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM allergens WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete allergen: %w", err)
	}
	return nil
}

func (s *Service) CreateSupplement(ctx context.Context, names map[string]string, priceCents int) (*Supplement, error) {
	sup := &Supplement{ID: typeid.NewSupplementID(), Names: names, PriceCents: priceCents}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO supplements (id, names, price_cents) VALUES ($1, $2, $3)
	`, sup.ID, sup.Names, sup.PriceCents)
	if err != nil {
		return nil, fmt.Errorf("create supplement: %w", err)
	}
	return sup, nil
}

func (s *Service) ListSupplements(ctx context.Context) ([]Supplement, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, names, price_cents FROM supplements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list supplements: %w", err)
	}
	defer rows.Close()
	var out []Supplement
	for rows.Next() {
		var sup Supplement
		if err := rows.Scan(&sup.ID, &sup.Names, &sup.PriceCents); err != nil {
			return nil, err
		}
		out = append(out, sup)
	}
	return out, rows.Err()
}

func (s *Service) DeleteSupplement(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM supplements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete supplement: %w", err)
	}
	return nil
}

func (s *Service) CreateSideDish(ctx context.Context, names map[string]string, priceCents int) (*SideDish, error) {
	sd := &SideDish{ID: typeid.NewSideDishID(), Names: names, PriceCents: priceCents}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO side_dishes (id, names, price_cents) VALUES ($1, $2, $3)
	`, sd.ID, sd.Names, sd.PriceCents)
	if err != nil {
		return nil, fmt.Errorf("create side dish: %w", err)
	}
	return sd, nil
}

func (s *Service) ListSideDishes(ctx context.Context) ([]SideDish, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, names, price_cents FROM side_dishes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list side dishes: %w", err)
	}
	defer rows.Close()
	var out []SideDish
	for rows.Next() {
		var sd SideDish
		if err := rows.Scan(&sd.ID, &sd.Names, &sd.PriceCents); err != nil {
			return nil, err
		}
		out = append(out, sd)
	}
	return out, rows.Err()
}

func (s *Service) DeleteSideDish(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM side_dishes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete side dish: %w", err)
	}
	return nil
}

// --- Public board view ---

// BoardMenu assembles the guest-facing menu tree: hidden entries are
// filtered at every level and siblings are sorted by their order field.
func (s *Service) BoardMenu(ctx context.Context) ([]BoardCategory, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	subcategories, err := s.ListSubcategories(ctx, "")
	if err != nil {
		return nil, err
	}
	items, err := s.ListMenuItems(ctx, "")
	if err != nil {
		return nil, err
	}

	itemsBySub := make(map[string][]MenuItem)
	for _, item := range items {
		if item.Hidden {
			continue
		}
		itemsBySub[item.SubcategoryID] = append(itemsBySub[item.SubcategoryID], item)
	}
	subsByCat := make(map[string][]BoardSubcategory)
	for _, sc := range subcategories {
		if sc.Hidden {
			continue
		}
		subsByCat[sc.CategoryID] = append(subsByCat[sc.CategoryID], BoardSubcategory{
			ID:    sc.ID,
			Names: sc.Names,
			Items: itemsBySub[sc.ID],
		})
	}

	board := make([]BoardCategory, 0, len(categories))
	for _, c := range categories {
		if c.Hidden {
			continue
		}
		subs := subsByCat[c.ID]
		if subs == nil {
			subs = []BoardSubcategory{}
		}
		board = append(board, BoardCategory{ID: c.ID, Names: c.Names, Subcategories: subs})
	}
	// The SQL lists arrive ordered, so the tree is ordered at every level.
	return board, nil
}
