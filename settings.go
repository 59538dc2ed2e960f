package strand

// Default display settings.
const (
	DefaultZoomLevel     = 1.0
	DefaultNodeThickness = 10.0
)

// Settings are display parameters supplied by the settings collaborator.
// None of them alter the data model; LinkThreshold and AnchorMode take
// effect on the next Load.
type Settings struct {
	ZoomLevel      float64
	NodeThickness  float64
	RandomColors   bool
	ShowNodeLabels bool
	ShowFPS        bool

	LinkThreshold float64
	AnchorMode    AnchorMode

	MinScale, MaxScale float64
	ZoomDuration       float32 // seconds; 0 snaps
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	return Settings{
		ZoomLevel:     DefaultZoomLevel,
		NodeThickness: DefaultNodeThickness,
		LinkThreshold: DefaultLinkThreshold,
		AnchorMode:    AnchorClosestPair,
		MinScale:      DefaultMinScale,
		MaxScale:      DefaultMaxScale,
		ZoomDuration:  DefaultZoomDuration,
	}
}

// normalized replaces out-of-range values with defaults.
func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if s.MinScale <= 0 {
		s.MinScale = def.MinScale
	}
	if s.MaxScale <= 0 {
		s.MaxScale = def.MaxScale
	}
	if s.MaxScale < s.MinScale {
		s.MinScale, s.MaxScale = s.MaxScale, s.MinScale
	}
	if s.ZoomLevel <= 0 {
		s.ZoomLevel = def.ZoomLevel
	}
	if s.NodeThickness < 0 {
		s.NodeThickness = def.NodeThickness
	}
	if s.LinkThreshold <= 0 {
		s.LinkThreshold = def.LinkThreshold
	}
	if s.ZoomDuration < 0 {
		s.ZoomDuration = 0
	}
	return s
}

// ApplySettings installs new settings and marks only the artifacts whose
// inputs changed as stale: thickness invalidates shapes, the color mode
// invalidates fills, and a new zoom level animates the viewport.
func (d *Diagram) ApplySettings(s Settings) {
	s = s.normalized()
	old := d.settings
	d.settings = s

	if s.NodeThickness != old.NodeThickness {
		d.shapesDirty = true
	}
	if s.RandomColors != old.RandomColors {
		d.fillsDirty = true
	}
	if s.MinScale != old.MinScale || s.MaxScale != old.MaxScale {
		d.viewport.MinScale = s.MinScale
		d.viewport.MaxScale = s.MaxScale
		d.viewport.Scale = d.viewport.clampScale(d.viewport.Scale)
		d.viewport.MarkDirty()
	}
	d.viewport.ZoomDuration = s.ZoomDuration
	if s.ZoomLevel != old.ZoomLevel {
		d.viewport.SetScale(s.ZoomLevel)
	}
}

// Settings returns the active settings.
func (d *Diagram) Settings() Settings {
	return d.settings
}
