package weather

// WeatherSnapshot is the result of one successful fetch. It is handed out by
// value and is never partially populated: mandatory fields missing from the
// provider response fail the fetch instead.
type WeatherSnapshot struct {
	City            string   `json:"city"`
	Country         string   `json:"country"`
	Summary         string   `json:"summary"`
	Description     string   `json:"description"`
	ConditionCode   int      `json:"condition_code"`
	Category        Category `json:"category"`
	TemperatureC    int      `json:"temperature_c"`
	FeelsLikeC      int      `json:"feels_like_c"`
	HumidityPercent int      `json:"humidity_percent"`
	WindSpeedKmh    int      `json:"wind_speed_kmh"`
}
