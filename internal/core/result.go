package core

import (
	"time"

	"github.com/darkawower/astra/internal/generator"
)

// Result describes what a generate or default run did.
type Result struct {
	// Kind is the generator that produced the image.
	Kind generator.Kind

	// Path is the saved PNG, empty when the image was not saved.
	Path string

	// Width and Height are the image dimensions.
	Width, Height int

	// Saved indicates the image was written to the wallpapers directory.
	Saved bool

	// Applied indicates the image was set as the desktop wallpaper.
	Applied bool

	// Skipped indicates the default run was not due yet.
	Skipped bool

	// At is when the run finished.
	At time.Time
}

// ApplyOptions control what happens to a generated image.
type ApplyOptions struct {
	// NoSave keeps the image in memory. It only has an effect together with
	// NoUpdate, since the desktop needs a file to point at.
	NoSave bool

	// NoUpdate leaves the current wallpaper untouched.
	NoUpdate bool
}
