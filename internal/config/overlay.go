// config/overlay.go
package config

import (
	"errors"
	"os"

	"jobscreen-engine/internal/flags"
)

// BuildDetector turns the detector section into a ready flags.Detector.
// A missing catalog file falls back to the built-in catalog; a present
// but broken one is a hard error.
func BuildDetector(cfg Config) (flags.Detector, error) {
	var cat *flags.Catalog

	if p := cfg.Detector.CatalogPath; p != "" {
		c, err := flags.Load(p)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return flags.Detector{}, err
			}
		} else {
			cat = c
		}
	}

	det := flags.NewDetector(cat)
	if cfg.Detector.MinDescriptionLen > 0 {
		det.MinDescriptionLen = cfg.Detector.MinDescriptionLen
	}
	if cfg.Detector.CapsRatio > 0 {
		det.CapsRatio = cfg.Detector.CapsRatio
	}
	if cfg.Detector.MisspellingCount > 0 {
		det.MisspellingCount = cfg.Detector.MisspellingCount
	}
	if cfg.Detector.EscalateCount > 0 {
		det.EscalateCount = cfg.Detector.EscalateCount
	}
	return det, nil
}
