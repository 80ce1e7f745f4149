package display

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/vzahanych/weather-display/internal/weather"
)

// Display caps, in runes.
const (
	MaxCityLen        = 99
	MaxCountryLen     = 99
	MaxDescriptionLen = 255
)

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// View is the display-ready form of a snapshot.
type View struct {
	Location    string
	Description string
	Temperature string
	FeelsLike   string
	Humidity    string
	Wind        string
	Category    string
	Assets      AssetPaths
	HasAssets   bool
}

func NewView(s weather.WeatherSnapshot, assetsDir string) View {
	city := Truncate(s.City, MaxCityLen)
	country := Truncate(s.Country, MaxCountryLen)

	location := city
	switch {
	case city != "" && country != "":
		location = city + ", " + country
	case city == "":
		location = country
	}

	v := View{
		Location:    location,
		Description: Truncate(s.Description, MaxDescriptionLen),
		Temperature: fmt.Sprintf("%dC", s.TemperatureC),
		FeelsLike:   fmt.Sprintf("%dC", s.FeelsLikeC),
		Humidity:    fmt.Sprintf("%d%%", s.HumidityPercent),
		Wind:        fmt.Sprintf("%d km/h", s.WindSpeedKmh),
		Category:    s.Category.String(),
	}
	v.Assets, v.HasAssets = Assets(assetsDir, s.Category)
	return v
}

// FailureText is the message shown for a failed fetch, with a hint for the
// manual retry the user can take.
func FailureText(kind weather.FailureKind, message string) string {
	switch kind {
	case weather.MissingCredential:
		return fmt.Sprintf("Missing API key. %s and try again.", message)
	case weather.Transport:
		return fmt.Sprintf("Could not reach the weather service: %s. Check your connection and retry.", message)
	case weather.MalformedResponse:
		return fmt.Sprintf("%s. Retry in a moment.", message)
	case weather.CityNotFound:
		return fmt.Sprintf("%s. Check the spelling and retry.", message)
	default:
		return message
	}
}

// Render writes a plain-text panel for r.
func Render(w io.Writer, r weather.FetchResult, assetsDir string) error {
	if kind, msg, failed := r.Failure(); failed {
		_, err := fmt.Fprintln(w, FailureText(kind, msg))
		return err
	}

	snap, _ := r.Snapshot()
	v := NewView(snap, assetsDir)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", v.Description)
	if v.Location != "" {
		fmt.Fprintf(&b, "%s\n", v.Location)
	}
	fmt.Fprintf(&b, "Temperature: %s (feels like %s)\n", v.Temperature, v.FeelsLike)
	fmt.Fprintf(&b, "Humidity:    %s\n", v.Humidity)
	fmt.Fprintf(&b, "Wind:        %s\n", v.Wind)
	if v.HasAssets {
		fmt.Fprintf(&b, "Banner:      %s\n", v.Assets.Banner)
		fmt.Fprintf(&b, "Icon:        %s\n", v.Assets.Icon)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
