package adapters

import "storefront/models"

// Product maps a raw upstream record into a Product. It does not validate:
// missing fields stay zero, a missing description stays nil.
func Product(raw models.RawProduct) models.Product {
	var p models.Product

	if raw.Id != nil {
		p.Id = *raw.Id
	}

	if raw.Name != nil {
		p.Name = *raw.Name
	}

	if raw.Price != nil {
		p.Price = *raw.Price
	}

	if raw.Image != nil {
		p.ImageUrl = *raw.Image
	}

	p.Description = raw.Description

	return p
}

func Products(raws []models.RawProduct) []models.Product {
	products := make([]models.Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, Product(raw))
	}
	return products
}
