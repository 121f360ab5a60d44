package model

import (
	"hotel/shared/model"
	"hotel/shared/timezone"
)

// Nights counts the whole days from start to end, end exclusive. It is zero or negative when end
// does not come after start.
func Nights(start, end model.Date) int {
	return timezone.DaysBetween(start.Time, end.Time)
}

// Total prices a stay: the room rate and every service rate are charged once per night.
func Total(nights int, roomPrice float64, servicePrices ...float64) float64 {
	total := float64(nights) * roomPrice
	for _, price := range servicePrices {
		total += float64(nights) * price
	}

	return total
}
