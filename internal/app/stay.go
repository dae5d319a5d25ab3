package app

import "time"

// StayFrom returns a stay starting the day after now and lasting nights nights,
// both dates at UTC midnight.
func StayFrom(now time.Time, nights int) (checkIn, checkOut time.Time) {
	if nights <= 0 {
		nights = 1
	}
	y, m, d := now.Date()
	checkIn = time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
	return checkIn, checkIn.AddDate(0, 0, nights)
}
