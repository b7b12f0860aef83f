package extract

// Options tune the heuristic pipeline. Zero values are replaced by the
// corresponding defaults at construction time.
type Options struct {
	// HeaderScanRows bounds the header search from the top of the sheet.
	HeaderScanRows int
	// HeaderScanCols bounds how many columns are scored per candidate row.
	HeaderScanCols int
	// MapScanCols bounds the column mapping pass on the accepted header row.
	MapScanCols int
	// FuzzyThreshold is the minimum similarity ratio for fuzzy header
	// matching. DisableFuzzy switches the fuzzy tier off entirely.
	FuzzyThreshold float64
	DisableFuzzy   bool
	// LayoutSampleRows bounds the layout classification scan below the
	// header row.
	LayoutSampleRows int
	// DetailKeyThreshold is how many inline detail keys the sample must
	// contain before a sheet without item markers is treated as grouped
	// layout.
	DetailKeyThreshold int
}

// DefaultOptions returns the tuning used in production.
func DefaultOptions() Options {
	return Options{
		HeaderScanRows:     50,
		HeaderScanCols:     20,
		MapScanCols:        30,
		FuzzyThreshold:     0.75,
		LayoutSampleRows:   50,
		DetailKeyThreshold: 5,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HeaderScanRows <= 0 {
		o.HeaderScanRows = d.HeaderScanRows
	}
	if o.HeaderScanCols <= 0 {
		o.HeaderScanCols = d.HeaderScanCols
	}
	if o.MapScanCols <= 0 {
		o.MapScanCols = d.MapScanCols
	}
	if o.FuzzyThreshold <= 0 {
		o.FuzzyThreshold = d.FuzzyThreshold
	}
	if o.LayoutSampleRows <= 0 {
		o.LayoutSampleRows = d.LayoutSampleRows
	}
	if o.DetailKeyThreshold <= 0 {
		o.DetailKeyThreshold = d.DetailKeyThreshold
	}
	return o
}
