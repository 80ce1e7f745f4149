package display

import (
	"path/filepath"

	"github.com/vzahanych/weather-display/internal/weather"
)

// AssetPaths locates the banner and icon images for a category.
type AssetPaths struct {
	Banner string `json:"banner"`
	Icon   string `json:"icon"`
}

type assetNames struct {
	banner string
	icon   string
}

var assetTable = map[weather.Category]assetNames{
	weather.CategoryThunderstorm: {"thunderStorm.jpg", "thunderStorm.png"},
	weather.CategoryDrizzle:      {"rain.jpg", "rain.png"},
	weather.CategoryRain:         {"rain.jpg", "rain.png"},
	weather.CategorySnow:         {"snow.jpg", "snow.png"},
	weather.CategoryAtmosphere:   {"fog.jpg", "fog.png"},
	weather.CategoryClear:        {"clear.jpg", "sunny.png"},
	weather.CategoryClouds:       {"clouds.jpg", "clouds.png"},
}

// Assets resolves image paths under baseDir. CategoryUnknown has no artwork.
func Assets(baseDir string, c weather.Category) (AssetPaths, bool) {
	names, ok := assetTable[c]
	if !ok {
		return AssetPaths{}, false
	}
	return AssetPaths{
		Banner: filepath.Join(baseDir, "assets", "weatherBanner", names.banner),
		Icon:   filepath.Join(baseDir, "assets", "weatherLogos", names.icon),
	}, true
}
