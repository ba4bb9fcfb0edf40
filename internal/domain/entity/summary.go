package entity

// Summary is the platform-wide statistics snapshot.
type Summary struct {
	ReviewCount          int64
	AverageRating        float64 // Rounded to one decimal; 0 when there are no reviews.
	BusinessProfileCount int64
	OfferCount           int64
}
