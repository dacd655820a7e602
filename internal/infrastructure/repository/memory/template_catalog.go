package memory

import (
	"context"
	"sync"

	"github.com/clubops/matchday-ops/internal/domain/template"
)

type TemplateCatalog struct {
	mu          sync.RWMutex
	packsByClub map[string][]template.Pack
}

func NewTemplateCatalog(packs []template.Pack) *TemplateCatalog {
	packsByClub := make(map[string][]template.Pack)
	for _, item := range packs {
		packsByClub[item.ClubID] = append(packsByClub[item.ClubID], clonePack(item))
	}

	return &TemplateCatalog{packsByClub: packsByClub}
}

// ListEnabled preserves insertion order; the catalog order is what drives
// generated sort_order.
func (r *TemplateCatalog) ListEnabled(_ context.Context, clubID string) ([]template.Pack, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.packsByClub[clubID]
	out := make([]template.Pack, 0, len(items))
	for _, item := range items {
		if !item.Enabled {
			continue
		}
		out = append(out, clonePack(item))
	}
	return out, nil
}

func (r *TemplateCatalog) Upsert(_ context.Context, pack template.Pack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.packsByClub[pack.ClubID]
	for i, item := range items {
		if item.ID == pack.ID {
			items[i] = clonePack(pack)
			return nil
		}
	}
	r.packsByClub[pack.ClubID] = append(items, clonePack(pack))
	return nil
}

func clonePack(p template.Pack) template.Pack {
	copied := p
	copied.Tasks = make([]template.Task, len(p.Tasks))
	for i, item := range p.Tasks {
		copied.Tasks[i] = item
		if item.OffsetHours != nil {
			offset := *item.OffsetHours
			copied.Tasks[i].OffsetHours = &offset
		}
	}
	return copied
}
