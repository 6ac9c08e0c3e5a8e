package resources

import (
	"embed"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
)

const logoDir = "logo/"

// Icon file names.
const (
	AppIcon     = "app.png"
	FocusIcon   = "focus.png"
	RestIcon    = "rest.png"
	RestDimIcon = "rest_dim.png"
	PausedIcon  = "paused.png"
)

//go:embed logo/*.png
var logoFS embed.FS

var logoCache sync.Map

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	return loadResource(logoFS, logoDir+fileName, &logoCache)
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
