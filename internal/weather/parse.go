package weather

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const kelvinOffset = 273.15

// msToKmh converts metres per second to kilometres per hour.
const msToKmh = 3.6

type document map[string]interface{}

// parseSnapshot decodes an OpenWeatherMap current-weather body. Every failure
// comes back as a *FetchError of kind MalformedResponse or CityNotFound.
func parseSnapshot(body []byte) (WeatherSnapshot, *FetchError) {
	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return WeatherSnapshot{}, &FetchError{Kind: MalformedResponse, Message: msgMalformed, Err: err}
	}
	if doc == nil {
		return WeatherSnapshot{}, malformed("response is not a JSON object")
	}

	// The provider reports an unknown city inside the body, often with HTTP 200.
	if isNotFound(doc["cod"]) {
		return WeatherSnapshot{}, &FetchError{Kind: CityNotFound, Message: msgCityNotFound}
	}

	var s WeatherSnapshot

	s.City, _ = doc.str("name")
	s.Country, _ = doc.object("sys").str("country")

	var first document
	if list, ok := doc["weather"].([]interface{}); ok && len(list) > 0 {
		first = asObject(list[0])
	}

	s.Summary, _ = first.str("main")
	if desc, ok := first.str("description"); ok {
		s.Description = capitalize(desc)
	} else {
		s.Description = capitalize(s.Summary)
	}

	code, ok := first.integer("id")
	if !ok {
		return WeatherSnapshot{}, malformed("weather[0].id missing or not an integer")
	}
	s.ConditionCode = code
	s.Category = Classify(code)

	readings := doc.object("main")

	temp, ok := readings.number("temp")
	if !ok {
		return WeatherSnapshot{}, malformed("main.temp missing or not a number")
	}
	s.TemperatureC = kelvinToCelsius(temp)

	if feels, ok := readings.number("feels_like"); ok {
		s.FeelsLikeC = kelvinToCelsius(feels)
	}
	if humidity, ok := readings.number("humidity"); ok {
		s.HumidityPercent = int(humidity)
	}
	if speed, ok := doc.object("wind").number("speed"); ok {
		s.WindSpeedKmh = int(speed * msToKmh)
	}

	return s, nil
}

func malformed(detail string) *FetchError {
	return &FetchError{Kind: MalformedResponse, Message: msgMalformed, Err: errors.New(detail)}
}

// isNotFound accepts both 404 and "404".
func isNotFound(cod interface{}) bool {
	switch v := cod.(type) {
	case float64:
		return v == 404
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return err == nil && n == 404
	default:
		return false
	}
}

// kelvinToCelsius truncates toward zero, matching an integer cast.
func kelvinToCelsius(k float64) int {
	return int(k - kelvinOffset)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func asObject(v interface{}) document {
	m, _ := v.(map[string]interface{})
	return document(m)
}

// object returns the nested object at key, or nil. Lookups on a nil document
// report every field as absent.
func (d document) object(key string) document {
	if d == nil {
		return nil
	}
	return asObject(d[key])
}

func (d document) str(key string) (string, bool) {
	if d == nil {
		return "", false
	}
	s, ok := d[key].(string)
	return s, ok
}

// number rejects values whose truncated form would not fit an int.
func (d document) number(key string) (float64, bool) {
	if d == nil {
		return 0, false
	}
	f, ok := d[key].(float64)
	if !ok || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return f, true
}

func (d document) integer(key string) (int, bool) {
	f, ok := d.number(key)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
