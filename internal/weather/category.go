package weather

// Category is the presentation bucket for a provider condition code.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryThunderstorm
	CategoryDrizzle
	CategoryRain
	CategorySnow
	CategoryAtmosphere
	CategoryClear
	CategoryClouds
)

var categoryNames = map[Category]string{
	CategoryUnknown:      "unknown",
	CategoryThunderstorm: "thunderstorm",
	CategoryDrizzle:      "drizzle",
	CategoryRain:         "rain",
	CategorySnow:         "snow",
	CategoryAtmosphere:   "atmosphere",
	CategoryClear:        "clear",
	CategoryClouds:       "clouds",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[CategoryUnknown]
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Classify maps an OpenWeatherMap condition id onto a Category.
// Ranges are inclusive; gaps in the provider's numbering fall back to CategoryUnknown.
func Classify(code int) Category {
	switch {
	case code >= 200 && code <= 232:
		return CategoryThunderstorm
	case code >= 300 && code <= 321:
		return CategoryDrizzle
	case code >= 500 && code <= 531:
		return CategoryRain
	case code >= 600 && code <= 622:
		return CategorySnow
	case code >= 701 && code <= 781:
		return CategoryAtmosphere
	case code == 800:
		return CategoryClear
	case code >= 801 && code <= 804:
		return CategoryClouds
	default:
		return CategoryUnknown
	}
}
