package testdata

// Product names as they appear on the storefront catalog
const (
	ProductTShirt  = "Hummingbird printed t-shirt"
	ProductMug     = "Mug The best is yet to come"
	ProductSweater = "Hummingbird printed sweater"
	ProductPoster  = "Today is a good day Framed poster"
)
