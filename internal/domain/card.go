package domain

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is shared by every Validate method.
var validatorInstance = validator.New(validator.WithRequiredStructEnabled())

// AllowedImageExtensions lists the image types a page may reference.
var AllowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
}

func init() {
	_ = validatorInstance.RegisterValidation("assetname", validateAssetName)
}

// validateAssetName accepts a bare file name with an allowed image extension.
// Directory components and traversal attempts are rejected.
func validateAssetName(fl validator.FieldLevel) bool {
	name := fl.Field().String()

	if strings.ContainsAny(name, `/\~`) || strings.Contains(name, "..") {
		return false
	}
	if name != filepath.Clean(name) {
		return false
	}
	return AllowedImageExtensions[strings.ToLower(path.Ext(name))]
}

// ImageRef points at an image asset shipped with the page.
type ImageRef struct {
	Name string `validate:"required,assetname"` // Asset file name, e.g. "pets.svg".
	Alt  string // Alternative text. Empty means "use the card title".
}

// DisplayCard is a literal bundle of an image, a title and a description
// shown verbatim. The hero heading and every tile use it.
type DisplayCard struct {
	Image       ImageRef
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

// AltText returns the image's alternative text, falling back to the title.
func (c DisplayCard) AltText() string {
	if c.Image.Alt != "" {
		return c.Image.Alt
	}
	return c.Title
}

// Validate checks that every field required for rendering is present.
func (c DisplayCard) Validate() error {
	if err := validatorInstance.Struct(c); err != nil {
		return fmt.Errorf("%w: %q: %s", ErrIncompleteCard, c.Title, describe(err))
	}
	return nil
}

// TileCount is the number of promotional tiles below the hero heading.
const TileCount = 3

// HomePage is the complete literal content of the landing page.
type HomePage struct {
	Hero         DisplayCard   `validate:"-"`
	Tiles        []DisplayCard `validate:"len=3"` // Cards are checked one by one in Validate.
	CallToAction string        `validate:"required"`
}

// Validate checks the page shape and then every card on it.
func (p HomePage) Validate() error {
	if err := validatorInstance.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPage, describe(err))
	}
	if err := p.Hero.Validate(); err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	for i, tile := range p.Tiles {
		if err := tile.Validate(); err != nil {
			return fmt.Errorf("tile %d: %w", i+1, err)
		}
	}
	return nil
}

// Images returns the asset names referenced by the page, hero first.
func (p HomePage) Images() []string {
	names := make([]string, 0, 1+len(p.Tiles))
	names = append(names, p.Hero.Image.Name)
	for _, tile := range p.Tiles {
		names = append(names, tile.Image.Name)
	}
	return names
}

// describe flattens validator errors into "Field:tag" pairs.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Namespace()+":"+fe.Tag())
	}
	return strings.Join(parts, ", ")
}
