package gui

import (
	"errors"

	"github.com/ncruces/zenity"
)

var yamlFilter = zenity.FileFilters{{
	Name:     "Configuration",
	Patterns: []string{"*.yaml", "*.yml"},
	CaseFold: true,
}}

// nativeDialogs uses the platform file pickers.
type nativeDialogs struct{}

func (nativeDialogs) OpenConfig() (string, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Open configuration"),
		yamlFilter,
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}

func (nativeDialogs) SaveConfig(suggested string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save configuration"),
		zenity.Filename(suggested),
		zenity.ConfirmOverwrite(),
		yamlFilter,
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return path, err
}
