package accessors

import "runtime"

// Keys names the attribute each field is stored under.
type Keys struct {
	Comment        string `yaml:"comment"`
	DownloadedDate string `yaml:"downloaded_date"`
	WhereFroms     string `yaml:"where_froms"`
	RunCount       string `yaml:"run_count"`
	LastRun        string `yaml:"last_run"`
	Provenance     string `yaml:"provenance"`
}

const spotlightPrefix = "com.apple.metadata:"

// DefaultKeys returns the keys for the running platform.
func DefaultKeys() Keys {
	return KeysFor(runtime.GOOS)
}

// KeysFor returns the default keys for goos. On darwin these are the keys
// Finder and Spotlight use. Elsewhere the same names are placed in the user
// namespace, which is the only one unprivileged processes may write.
func KeysFor(goos string) Keys {
	keys := Keys{
		Comment:        spotlightPrefix + "kMDItemFinderComment",
		DownloadedDate: spotlightPrefix + "kMDItemDownloadedDate",
		WhereFroms:     spotlightPrefix + "kMDItemWhereFroms",
		RunCount:       "t-no.LocaURL",
		LastRun:        "t-no.de.date",
		Provenance:     "t-no.de.provenance",
	}
	if goos == "darwin" {
		return keys
	}
	return keys.WithPrefix("user.")
}

// WithPrefix returns a copy of k with prefix prepended to every key.
func (k Keys) WithPrefix(prefix string) Keys {
	return Keys{
		Comment:        prefix + k.Comment,
		DownloadedDate: prefix + k.DownloadedDate,
		WhereFroms:     prefix + k.WhereFroms,
		RunCount:       prefix + k.RunCount,
		LastRun:        prefix + k.LastRun,
		Provenance:     prefix + k.Provenance,
	}
}

// Merge returns k with every non-empty field of override applied.
func (k Keys) Merge(override Keys) Keys {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return Keys{
		Comment:        pick(k.Comment, override.Comment),
		DownloadedDate: pick(k.DownloadedDate, override.DownloadedDate),
		WhereFroms:     pick(k.WhereFroms, override.WhereFroms),
		RunCount:       pick(k.RunCount, override.RunCount),
		LastRun:        pick(k.LastRun, override.LastRun),
		Provenance:     pick(k.Provenance, override.Provenance),
	}
}
