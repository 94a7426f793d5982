package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixProject     = "proj"
	PrefixPage        = "page"
	PrefixLayer       = "layer"
	PrefixElement     = "elem"
	PrefixCategory    = "cat"
	PrefixSubcategory = "sub"
	PrefixMenuItem    = "item"
	PrefixAllergen    = "alg"
	PrefixSupplement  = "sup"
	PrefixSideDish    = "side"
	PrefixAsset       = "asset"
	PrefixStaff       = "staff"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewProjectID() string     { return New(PrefixProject) }
func NewPageID() string        { return New(PrefixPage) }
func NewLayerID() string       { return New(PrefixLayer) }
func NewElementID() string     { return New(PrefixElement) }
func NewCategoryID() string    { return New(PrefixCategory) }
func NewSubcategoryID() string { return New(PrefixSubcategory) }
func NewMenuItemID() string    { return New(PrefixMenuItem) }
func NewAllergenID() string    { return New(PrefixAllergen) }
func NewSupplementID() string  { return New(PrefixSupplement) }
func NewSideDishID() string    { return New(PrefixSideDish) }
func NewAssetID() string       { return New(PrefixAsset) }
func NewStaffID() string       { return New(PrefixStaff) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
