package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong
// or questionable about it. Errors make the config unusable; warnings
// are advisory.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, strings.ToLower(x))
		}
		return ys
	}

	out.Enrichment.DomainsBlocked = trimList(out.Enrichment.DomainsBlocked)

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if strings.TrimSpace(out.App.ModelDir) == "" {
		res.addErr("app.model_dir is required")
	}

	// ensemble sanity: negative weights are meaningless, all-zero falls
	// back to defaults at blend time
	if out.Ensemble.DNN < 0 || out.Ensemble.Tree < 0 {
		res.addErr("ensemble weights must be >= 0")
	}
	if out.Ensemble.DNN == 0 && out.Ensemble.Tree == 0 {
		res.addWarn("ensemble weights are both zero; using built-in defaults.")
	}

	// detector sanity
	if out.Detector.MinDescriptionLen < 0 {
		res.addErr("detector.min_description_len must be >= 0")
	}
	if out.Detector.CapsRatio < 0 || out.Detector.CapsRatio > 1 {
		res.addErr("detector.caps_ratio must be between 0 and 1")
	}
	if out.Detector.MisspellingCount < 0 {
		res.addErr("detector.misspelling_count must be >= 0")
	}
	if out.Detector.EscalateCount <= 0 {
		res.addWarn("detector.escalate_count is unset; every multi-flag posting would escalate. Using the built-in default.")
	}

	if out.Analysis.BatchLimit <= 0 {
		res.addWarn("analysis.batch_limit is unset; using the built-in default.")
	} else if out.Analysis.BatchLimit > 500 {
		res.addWarn("analysis.batch_limit is very high (%d); large batches hold the request open for a long time.", out.Analysis.BatchLimit)
	}

	if out.Enrichment.DomainLookup && out.Enrichment.LookupPerHost <= 0 {
		res.addErr("enrichment.lookup_per_host must be > 0 when domain_lookup is enabled")
	}
	if out.Enrichment.LookupPerHost > 2 {
		res.addWarn("enrichment.lookup_per_host is high (%.1f/s) and may trip upstream rate limits.", out.Enrichment.LookupPerHost)
	}

	return out, res
}
