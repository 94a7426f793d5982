package document

import (
	"math"
	"time"

	"github.com/menucraft/menucraft/internal/typeid"
)

// MMToPx converts millimeters to device pixels at the fixed 300 DPI print
// scale (300 / 25.4).
const MMToPx = 11.811023622047244

// PixelsFromMM rounds a millimeter length to whole device pixels.
func PixelsFromMM(mm float64) int {
	return int(math.Round(mm * MMToPx))
}

// FormatCustom is the format name used for user-entered print sizes.
const FormatCustom = "CUSTOM"

// Named format presets. Raster sizes correspond to the print size at 300 DPI.
var formatPresets = map[string]Format{
	"A4": {Name: "A4", Width: 2480, Height: 3508, PrintWidthMM: 210, PrintHeightMM: 297},
	"A5": {Name: "A5", Width: 1748, Height: 2480, PrintWidthMM: 148, PrintHeightMM: 210},
	"A3": {Name: "A3", Width: 3508, Height: 4961, PrintWidthMM: 297, PrintHeightMM: 420},
}

// DefaultFormatName is used when no format is requested.
const DefaultFormatName = "A4"

// ResolveFormat maps a format request to a concrete Format. Custom formats
// carry explicit millimeter dimensions; unknown names fall back to the
// default preset.
func ResolveFormat(name string, customWidthMM, customHeightMM float64) Format {
	if name == FormatCustom && customWidthMM > 0 && customHeightMM > 0 {
		return Format{
			Name:          FormatCustom,
			Width:         PixelsFromMM(customWidthMM),
			Height:        PixelsFromMM(customHeightMM),
			PrintWidthMM:  customWidthMM,
			PrintHeightMM: customHeightMM,
		}
	}
	if f, ok := formatPresets[name]; ok {
		return f
	}
	return formatPresets[DefaultFormatName]
}

const timeLayout = "2006-01-02T15:04:05Z"

// Timestamp returns the current UTC time in the document timestamp layout.
func Timestamp() string {
	return time.Now().UTC().Format(timeLayout)
}

// NewProject builds a project with one page holding one empty default layer.
func NewProject(name string, format Format) *Project {
	now := Timestamp()
	return &Project{
		ID:        typeid.NewProjectID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Settings: Settings{
			DefaultFormat: format.Name,
			Zoom:          1.0,
		},
		Pages: []Page{NewPage("Page 1", format)},
	}
}

// NewPage builds a page with a single empty layer.
func NewPage(name string, format Format) Page {
	return Page{
		ID:     typeid.NewPageID(),
		Name:   name,
		Format: format,
		Background: Background{
			Color:        "#ffffff",
			ImageOpacity: 1.0,
		},
		Layers: []Layer{NewLayer("Layer 1")},
	}
}

// NewLayer builds an empty visible layer.
func NewLayer(name string) Layer {
	return Layer{
		ID:      typeid.NewLayerID(),
		Name:    name,
		Visible: true,
		Opacity: 1.0,
	}
}

// NewTextElement builds a text element with the editor's creation defaults
// at the given position.
func NewTextElement(x, y float64) Element {
	return Element{
		ID:      typeid.NewElementID(),
		Kind:    ElementKindText,
		X:       x,
		Y:       y,
		Width:   373,
		Height:  68,
		ScaleX:  1,
		ScaleY:  1,
		Visible: true,
		Opacity: 1,
		Text: &TextElement{
			Content:    "Text",
			FontFamily: "sans",
			FontSize:   64,
			FontStyle:  FontStyleNormal,
			Fill:       "#000000",
			AlignH:     AlignLeft,
			AlignV:     AlignTop,
			LineHeight: 1.2,
		},
	}
}
