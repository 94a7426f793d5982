package document

// Structural deep clones for duplication and the clipboard. An explicit
// clone (rather than a serialize round-trip) keeps non-serializable fields
// intact if any are ever added to the tree.

func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	out := *p
	out.Pages = make([]Page, len(p.Pages))
	for i := range p.Pages {
		out.Pages[i] = p.Pages[i].Clone()
	}
	return &out
}

func (pg Page) Clone() Page {
	out := pg
	out.Layers = make([]Layer, len(pg.Layers))
	for i := range pg.Layers {
		out.Layers[i] = pg.Layers[i].Clone()
	}
	return out
}

func (l Layer) Clone() Layer {
	out := l
	out.Elements = make([]Element, len(l.Elements))
	for i := range l.Elements {
		out.Elements[i] = l.Elements[i].Clone()
	}
	return out
}

func (e Element) Clone() Element {
	out := e
	if e.Text != nil {
		t := *e.Text
		if e.Text.Shadow != nil {
			sh := *e.Text.Shadow
			t.Shadow = &sh
		}
		out.Text = &t
	}
	if e.Image != nil {
		img := *e.Image
		if e.Image.Crop != nil {
			crop := *e.Image.Crop
			img.Crop = &crop
		}
		if e.Image.Filters != nil {
			img.Filters = append([]string(nil), e.Image.Filters...)
		}
		out.Image = &img
	}
	if e.Data != nil {
		d := *e.Data
		if e.Data.Snapshot != nil {
			d.Snapshot = e.Data.Snapshot.Clone()
		}
		if e.Data.Style.Border != nil {
			b := *e.Data.Style.Border
			d.Style.Border = &b
		}
		if e.Data.List.Divider != nil {
			dv := *e.Data.List.Divider
			d.List.Divider = &dv
		}
		out.Data = &d
	}
	return out
}

func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := Snapshot{
		Names: cloneStringMap(s.Names),
	}
	if s.Items != nil {
		out.Items = make([]SnapshotItem, len(s.Items))
		for i, it := range s.Items {
			out.Items[i] = SnapshotItem{
				ID:           it.ID,
				Names:        cloneStringMap(it.Names),
				Descriptions: cloneStringMap(it.Descriptions),
				PriceCents:   it.PriceCents,
				Order:        it.Order,
			}
		}
	}
	return &out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
