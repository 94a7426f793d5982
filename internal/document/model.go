package document

// Project is the root of a print-menu layout document. A project owns its
// pages outright; the whole tree is persisted (and cloned) as one unit.
type Project struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Settings  Settings `json:"settings"`
	Pages     []Page   `json:"pages"`
}

// Settings holds project-wide editor defaults.
type Settings struct {
	DefaultFormat string  `json:"defaultFormat"`
	Zoom          float64 `json:"zoom"`
}

// Format describes a page size: raster dimensions in device pixels plus the
// physical print size in millimeters.
type Format struct {
	Name          string  `json:"name"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	PrintWidthMM  float64 `json:"printWidthMm"`
	PrintHeightMM float64 `json:"printHeightMm"`
}

// Background is a page's backdrop: a fill color and an optional raster image
// drawn over it at the given opacity.
type Background struct {
	Color        string  `json:"color"`
	Image        string  `json:"image,omitempty"`
	ImageOpacity float64 `json:"imageOpacity"`
}

type Page struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Format     Format     `json:"format"`
	Background Background `json:"background"`
	Layers     []Layer    `json:"layers"`
}

// Layer groups elements; element order within a layer is paint order
// (later = on top). A page always retains at least one layer.
type Layer struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Visible  bool      `json:"visible"`
	Locked   bool      `json:"locked"`
	Opacity  float64   `json:"opacity"`
	Elements []Element `json:"elements"`
}

type ElementKind string

const (
	ElementKindText  ElementKind = "text"
	ElementKindImage ElementKind = "image"
	ElementKindData  ElementKind = "data"
)

// Element is the tagged union of everything that can sit on a layer.
// Exactly one of Text, Image, Data is non-nil, matching Kind.
type Element struct {
	ID       string      `json:"id"`
	Kind     ElementKind `json:"kind"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation float64     `json:"rotation"`
	ScaleX   float64     `json:"scaleX"`
	ScaleY   float64     `json:"scaleY"`
	Locked   bool        `json:"locked"`
	Visible  bool        `json:"visible"`
	Opacity  float64     `json:"opacity"`

	Text  *TextElement  `json:"text,omitempty"`
	Image *ImageElement `json:"image,omitempty"`
	Data  *DataElement  `json:"data,omitempty"`
}

type FontStyle string

const (
	FontStyleNormal FontStyle = "normal"
	FontStyleBold   FontStyle = "bold"
	FontStyleItalic FontStyle = "italic"
)

type HorizontalAlign string

const (
	AlignLeft   HorizontalAlign = "left"
	AlignCenter HorizontalAlign = "center"
	AlignRight  HorizontalAlign = "right"
)

type VerticalAlign string

const (
	AlignTop    VerticalAlign = "top"
	AlignMiddle VerticalAlign = "middle"
	AlignBottom VerticalAlign = "bottom"
)

type Shadow struct {
	Color   string  `json:"color"`
	Blur    float64 `json:"blur"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

type TextElement struct {
	Content       string          `json:"content"`
	FontFamily    string          `json:"fontFamily"`
	FontSize      float64         `json:"fontSize"`
	FontStyle     FontStyle       `json:"fontStyle"`
	Decoration    string          `json:"decoration,omitempty"`
	Fill          string          `json:"fill"`
	Stroke        string          `json:"stroke,omitempty"`
	AlignH        HorizontalAlign `json:"alignH"`
	AlignV        VerticalAlign   `json:"alignV"`
	LineHeight    float64         `json:"lineHeight"`
	LetterSpacing float64         `json:"letterSpacing"`
	Padding       float64         `json:"padding"`
	Shadow        *Shadow         `json:"shadow,omitempty"`
}

// CropRect is a sub-rectangle of an image's natural bounds.
type CropRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type ImageElement struct {
	Source        string    `json:"source"`
	NaturalWidth  float64   `json:"naturalWidth"`
	NaturalHeight float64   `json:"naturalHeight"`
	Crop          *CropRect `json:"crop,omitempty"`
	Filters       []string  `json:"filters,omitempty"`
}

type DataType string

const (
	DataTypeCategory    DataType = "category"
	DataTypeSubcategory DataType = "subcategory"
	DataTypeMenuItem    DataType = "menuitem"
)

// DataElement binds a layout element to a catalog entity. Snapshot is the
// denormalized display data captured at bind time; visual styling is
// independent of the binding.
type DataElement struct {
	DataType DataType     `json:"dataType"`
	DataID   string       `json:"dataId"`
	Snapshot *Snapshot    `json:"snapshot,omitempty"`
	Style    DataStyle    `json:"style"`
	List     ListOptions  `json:"list"`
}

// Snapshot holds the referenced catalog entity's display data as captured
// when the binding was made. Names and Descriptions are keyed by language.
type Snapshot struct {
	Names map[string]string `json:"names"`
	Items []SnapshotItem    `json:"items,omitempty"`
}

type SnapshotItem struct {
	ID           string            `json:"id"`
	Names        map[string]string `json:"names"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
	PriceCents   int               `json:"priceCents"`
	Order        int               `json:"order"`
}

type BorderStyle string

const (
	BorderSolid  BorderStyle = "solid"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
)

type Border struct {
	Color  string      `json:"color"`
	Width  float64     `json:"width"`
	Style  BorderStyle `json:"style"`
	Radius float64     `json:"radius"`
}

type DataStyle struct {
	Background        string  `json:"background,omitempty"`
	BackgroundOpacity float64 `json:"backgroundOpacity"`
	Border            *Border `json:"border,omitempty"`
	TextColor         string  `json:"textColor"`
	FontFamily        string  `json:"fontFamily"`
	FontSize          float64 `json:"fontSize"`
}

type DividerMode string

const (
	// DividerFull spans the whole container width.
	DividerFull DividerMode = "full"
	// DividerTitle matches the rendered title's width.
	DividerTitle DividerMode = "title"
	// DividerPercent spans a custom percentage of the container width.
	DividerPercent DividerMode = "percent"
)

type Divider struct {
	Mode      DividerMode `json:"mode"`
	Percent   float64     `json:"percent,omitempty"`
	Color     string      `json:"color"`
	Thickness float64     `json:"thickness"`
}

type ListLayout string

const (
	// ListLayoutLeft stacks name, description and price left-aligned.
	ListLayoutLeft ListLayout = "left"
	// ListLayoutJustified puts the name left and the price right-aligned
	// to the container edge.
	ListLayoutJustified ListLayout = "justified"
)

// ListOptions configures the menuitem list renderer of a data element.
type ListOptions struct {
	Layout           ListLayout `json:"layout"`
	ShowTitle        bool       `json:"showTitle"`
	TitleFontSize    float64    `json:"titleFontSize"`
	TitleColor       string     `json:"titleColor,omitempty"`
	TitleMarginTop   float64    `json:"titleMarginTop"`
	TitleMarginBot   float64    `json:"titleMarginBottom"`
	Divider          *Divider   `json:"divider,omitempty"`
	ShowDescription  bool       `json:"showDescription"`
	DescriptionWrap  int        `json:"descriptionWrap"`
	ShowPrice        bool       `json:"showPrice"`
	Currency         string     `json:"currency"`
	DecimalSeparator string     `json:"decimalSeparator"`
	LineSpacing      float64    `json:"lineSpacing"`
}

// LanguageChain is the fallback order used when resolving localized names.
var LanguageChain = []string{"en", "de", "fr", "es"}

// Localized resolves a name map through the language chain, then through any
// remaining key, else returns the empty string.
func Localized(names map[string]string) string {
	for _, lang := range LanguageChain {
		if v, ok := names[lang]; ok && v != "" {
			return v
		}
	}
	for _, v := range names {
		if v != "" {
			return v
		}
	}
	return ""
}
