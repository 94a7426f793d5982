package render

import (
	"image"

	"github.com/menucraft/menucraft/internal/document"
)

// RenderThumbnail paints a reduced-fidelity preview of a page scaled to fit
// maxWidth. Thumbnails draw real bitmaps for image elements and truncate
// text that would overflow.
func (r *Renderer) RenderThumbnail(page *document.Page, maxWidth int) *image.RGBA {
	if maxWidth <= 0 {
		maxWidth = 160
	}
	scale := float64(maxWidth) / float64(page.Format.Width)
	return r.RenderPage(page, Options{
		Scale:     scale,
		Thumbnail: true,
	})
}
