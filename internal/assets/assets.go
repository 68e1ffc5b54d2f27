package assets

import (
	"embed"

	"github.com/spf13/afero"
)

// StinkCloud is the overlay drawn on top of profile pictures.
const StinkCloud = "images/stink-cloud.png"

//go:embed images
var files embed.FS

// FS returns the asset filesystem: dir on disk when set, otherwise the
// assets compiled into the binary. Both are read-only.
func FS(dir string) afero.Fs {
	if dir != "" {
		return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir))
	}
	return afero.FromIOFS{FS: files}
}
