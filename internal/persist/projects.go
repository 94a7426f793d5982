package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/menucraft/menucraft/internal/document"
)

// keyPrefix namespaces layout projects inside the shared key/value store.
const keyPrefix = "menucraft_project_"

func projectKey(id string) string { return keyPrefix + id }

// Projects persists layout projects as JSON documents in a Store.
type Projects struct {
	kv Store
}

func NewProjects(kv Store) *Projects {
	return &Projects{kv: kv}
}

// Save serializes the whole project tree under its key, overwriting any
// previous revision.
func (p *Projects) Save(ctx context.Context, proj *document.Project) error {
	if proj == nil || proj.ID == "" {
		return fmt.Errorf("save project: missing id")
	}
	data, err := json.Marshal(proj)
	if err != nil {
		return fmt.Errorf("encode project %q: %w", proj.ID, err)
	}
	return p.kv.Put(ctx, projectKey(proj.ID), data)
}

// Load reads a project back. A stored value that no longer parses reports
// the offending key so the user can locate and remove it.
func (p *Projects) Load(ctx context.Context, id string) (*document.Project, error) {
	key := projectKey(id)
	data, err := p.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var proj document.Project
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("decode project %q: %w", key, err)
	}
	return &proj, nil
}

func (p *Projects) Delete(ctx context.Context, id string) error {
	return p.kv.Delete(ctx, projectKey(id))
}

// Summary is the project-picker view of a stored project: identity,
// timestamps, and the first page for thumbnail rendering.
type Summary struct {
	ID        string
	Name      string
	CreatedAt string
	UpdatedAt string
	PageCount int
	FirstPage *document.Page
}

// List loads summaries for every stored project. Entries that fail to
// decode are skipped rather than failing the whole listing.
func (p *Projects) List(ctx context.Context) ([]Summary, error) {
	keys, err := p.kv.Keys(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(keys))
	for _, key := range keys {
		id := strings.TrimPrefix(key, keyPrefix)
		proj, err := p.Load(ctx, id)
		if err != nil {
			continue
		}
		s := Summary{
			ID:        proj.ID,
			Name:      proj.Name,
			CreatedAt: proj.CreatedAt,
			UpdatedAt: proj.UpdatedAt,
			PageCount: len(proj.Pages),
		}
		if len(proj.Pages) > 0 {
			first := proj.Pages[0].Clone()
			s.FirstPage = &first
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
