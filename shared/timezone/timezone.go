// Package timezone keeps every timestamp the service produces in the location named by APP_TIMEZONE.
// Use IANA names such as "UTC" or "Asia/Jakarta".
package timezone

import (
	"hotel/config"
	"time"

	"github.com/rs/zerolog/log"
)

var appLocation = time.UTC

func init() {
	Init(config.Get().App.Timezone)
}

// Init sets the application location. An empty or unknown name leaves UTC in place.
func Init(name string) {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		appLocation = time.UTC

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC")

		appLocation = time.UTC

		return
	}

	appLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

func GetLocation() *time.Location {
	return appLocation
}

func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// Parse reads value in the application location when layout carries no zone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// DaysBetween counts calendar days from start to end, ignoring the time of day.
// The result is negative when end is before start.
func DaysBetween(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	return int(endDay.Sub(startDay).Hours() / 24) //nolint:mnd
}
