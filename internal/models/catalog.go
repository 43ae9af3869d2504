package models

import "fmt"

// SeedProducts returns the demo catalog the local storefront starts with.
// Search terms "macbook" and "samsung" match three and two products.
func SeedProducts() []Product {
	return []Product{
		{ID: 28, Name: "HTC Touch HD", Brand: "HTC", Code: "Product 1", RewardPoints: 400,
			Availability: AvailabilityInStock, PriceCents: 12200, ExTaxCents: 10000, Images: images("htc_touch_hd", 3)},
		{ID: 40, Name: "iPhone", Brand: "Apple", Code: "product 11", RewardPoints: 0,
			Availability: AvailabilityTwoToThree, PriceCents: 12320, ExTaxCents: 10100, Images: images("iphone", 6)},
		{ID: 48, Name: "iPod Classic", Brand: "Apple", Code: "product 20", RewardPoints: 0,
			Availability: AvailabilityInStock, PriceCents: 12200, ExTaxCents: 10000, Images: images("ipod_classic", 4)},
		{ID: 43, Name: "MacBook", Brand: "Apple", Code: "Product 16", RewardPoints: 600,
			Availability: AvailabilityInStock, PriceCents: 60200, ExTaxCents: 50000, Images: images("macbook", 5)},
		{ID: 44, Name: "MacBook Air", Brand: "Apple", Code: "Product 17", RewardPoints: 700,
			Availability: AvailabilityInStock, PriceCents: 120200, ExTaxCents: 100000, Images: images("macbook_air", 4)},
		{ID: 45, Name: "MacBook Pro", Brand: "Apple", Code: "Product 18", RewardPoints: 800,
			Availability: AvailabilityOutOfStock, PriceCents: 200000, ExTaxCents: 200000, Images: images("macbook_pro", 4)},
		{ID: 49, Name: "Samsung Galaxy Tab 10.1", Code: "SAM1", RewardPoints: 1000,
			Availability: AvailabilityPreOrder, PriceCents: 24199, ExTaxCents: 19999, Images: images("samsung_tab", 7)},
		{ID: 33, Name: "Samsung SyncMaster 941BW", Code: "Product 6", RewardPoints: 0,
			Availability: AvailabilityTwoToThree, PriceCents: 24200, ExTaxCents: 20000, Images: images("samsung_syncmaster", 1)},
		{ID: 47, Name: "HP LP3065", Brand: "Hewlett-Packard", Code: "Product 21", RewardPoints: 300,
			Availability: AvailabilityInStock, PriceCents: 12200, ExTaxCents: 10000, Images: images("hp_lp3065", 1)},
		{ID: 30, Name: "Canon EOS 5D", Brand: "Canon", Code: "Product 3", RewardPoints: 200,
			Availability: AvailabilityPreOrder, PriceCents: 9800, ExTaxCents: 8000, Images: images("canon_eos_5d", 3)},
	}
}

func images(slug string, n int) []string {
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("/image/catalog/demo/%s_%d.jpg", slug, i+1)
	}
	return paths
}
