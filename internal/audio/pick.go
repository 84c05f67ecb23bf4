package audio

import (
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"
)

// Pick asks the user for a background track. It returns "" when the dialog
// was cancelled.
func Pick() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Choose Background Track"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return filename, err
}
