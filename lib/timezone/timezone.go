package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		panic(err)
	}
}

// force timezone to be Paris because draws happen at Paris time
// and our servers sometimes end up in other regions which will cause
// disturbances when deciding what "today's draw" is based on
// <time.Time>.Year()/Month()/Day()
func Now() time.Time {
	return time.Now().In(Location)
}

// draws take place on tuesdays and fridays
func IsDrawDay(t time.Time) bool {
	day := t.In(Location).Weekday()
	return day == time.Tuesday || day == time.Friday
}

// the calendar date of the most recent draw on or before `now`
func LastDrawDate(now time.Time) time.Time {
	t := now.In(Location)
	for !IsDrawDay(t) {
		t = t.AddDate(0, 0, -1)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
