package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/menucraft/menucraft/internal/document"
	"github.com/menucraft/menucraft/internal/typeid"
)

// Client is the editor's typed view of the catalog API. Responses are
// decoded at this boundary so the document model never sees raw JSON from
// the network.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	// Development tunnels interpose an interstitial page unless asked not
	// to; harmless against a direct deployment.
	req.Header.Set("Bypass-Tunnel-Reminder", "1")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Subcategories(ctx context.Context, categoryID string) ([]Subcategory, error) {
	if categoryID != "" {
		if err := typeid.Validate(categoryID, typeid.PrefixCategory); err != nil {
			return nil, err
		}
	}
	path := "/api/subcategories"
	if categoryID != "" {
		path += "?categoryId=" + categoryID
	}
	var out []Subcategory
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MenuItems(ctx context.Context, subcategoryID string) ([]MenuItem, error) {
	if subcategoryID != "" {
		if err := typeid.Validate(subcategoryID, typeid.PrefixSubcategory); err != nil {
			return nil, err
		}
	}
	path := "/api/menu-items"
	if subcategoryID != "" {
		path += "?subcategoryId=" + subcategoryID
	}
	var out []MenuItem
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateCategories(ctx context.Context, patches map[string]CategoryPatch) error {
	return c.do(ctx, http.MethodPut, "/api/categories", patches, nil)
}

func (c *Client) DeleteCategories(ctx context.Context, ids []string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories", ids, nil)
}

func (c *Client) UpdateMenuItems(ctx context.Context, patches map[string]MenuItemPatch) error {
	return c.do(ctx, http.MethodPut, "/api/menu-items", patches, nil)
}

func (c *Client) DeleteMenuItems(ctx context.Context, ids []string) error {
	return c.do(ctx, http.MethodDelete, "/api/menu-items", ids, nil)
}

func (c *Client) BoardMenu(ctx context.Context) ([]BoardCategory, error) {
	var out []BoardCategory
	if err := c.do(ctx, http.MethodGet, "/board/menu", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubcategorySnapshot freezes a subcategory and its items into the form a
// layout element embeds. Rendering never reaches back to the network; a
// rebind replaces the snapshot wholesale.
func (c *Client) SubcategorySnapshot(ctx context.Context, sc Subcategory) (*document.Snapshot, error) {
	items, err := c.MenuItems(ctx, sc.ID)
	if err != nil {
		return nil, err
	}
	return SnapshotFrom(sc, items), nil
}

// SnapshotFrom builds a document snapshot from already-fetched catalog
// rows, skipping hidden items.
func SnapshotFrom(sc Subcategory, items []MenuItem) *document.Snapshot {
	snap := &document.Snapshot{Names: sc.Names}
	for _, item := range items {
		if item.Hidden {
			continue
		}
		snap.Items = append(snap.Items, document.SnapshotItem{
			ID:           item.ID,
			Names:        item.Names,
			Descriptions: item.Descriptions,
			PriceCents:   item.PriceCents,
			Order:        item.Order,
		})
	}
	return snap
}
