package resources

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	iconDir = "icons/"

	// IconFile is the plugin icon shown on every Pomodoro surface.
	IconFile = "pomodoro.png"
)

//go:embed icons/*.png
var iconFS embed.FS

var iconCache sync.Map

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	return loadResource(iconFS, iconDir+fileName, &iconCache)
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// MaterializeIcon writes the embedded icon into dir and returns its path.
// Hosts address media by file path, so the icon has to exist on disk.
func MaterializeIcon(dir, fileName string) (string, error) {
	resource, err := Icon(fileName)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create assets directory: %w", err)
	}

	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, resource.Content(), 0o644); err != nil {
		return "", fmt.Errorf("write icon %s: %w", fileName, err)
	}
	return path, nil
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
