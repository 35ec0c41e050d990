// Package content holds the literal copy and image references of the
// landing page. Nothing here is computed.
package content

import "github.com/nfrund/petshop/internal/domain"

// Image asset names shipped in internal/assets.
const (
	ImagePets  = "pets.svg"
	ImageFood  = "pet_food.svg"
	ImageToys  = "pet_toys.svg"
	ImageGroom = "pet_groom.svg"
)

// CallToAction is the label of the page's only button.
const CallToAction = "View More"

// Home returns the landing page content. Every call returns an equal value.
func Home() domain.HomePage {
	return domain.HomePage{
		Hero: domain.DisplayCard{
			Image:       domain.ImageRef{Name: ImagePets},
			Title:       "Welcome to Pet Shop",
			Description: "Discover a world of love and care for your pets. From nutritious food to fun toys and essential grooming supplies, we have everything your furry, feathered, or scaly friends need to live their best life.",
		},
		Tiles: []domain.DisplayCard{
			{
				Image:       domain.ImageRef{Name: ImageFood},
				Title:       "Premium Pet Food",
				Description: "Keep your furry friends healthy and happy with our wide selection of nutritious and delicious pet food.",
			},
			{
				Image:       domain.ImageRef{Name: ImageToys},
				Title:       "Toys & Accessories",
				Description: "Explore fun toys and handy accessories that your pets will love. From squeaky toys to cozy beds, we have it all.",
			},
			{
				Image:       domain.ImageRef{Name: ImageGroom},
				Title:       "Pet Grooming",
				Description: "Pamper your pets with our top-quality grooming products to keep them looking and feeling their best.",
			},
		},
		CallToAction: CallToAction,
	}
}
