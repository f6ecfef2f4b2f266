package state

import (
	"time"

	"marginbox/config"
	"marginbox/dom"
	"marginbox/editor"
	"marginbox/marginbox"
	"marginbox/text"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

// Configure installs loaded configuration and derives text metrics from it.
func (e *LocalEnv) Configure(cfg *config.Config) {
	e.Cfg = cfg
	e.Metrics = text.NewMetrics(cfg.Layout.LineGap)
}

// EditorGeometry places document column according to configuration.
func (e *LocalEnv) EditorGeometry() editor.Geometry {
	l := e.Cfg.Layout
	return editor.Geometry{
		DocumentTop:   l.DocumentTop,
		DocumentLeft:  l.DocumentLeft,
		DocumentWidth: l.DocumentWidth,
		BlockSpacing:  l.BlockSpacing,
	}
}

// PageGeometry places margin box column according to configuration.
func (e *LocalEnv) PageGeometry() dom.Geometry {
	l := e.Cfg.Layout
	return dom.Geometry{
		ContainerTop:  l.ContainerTop,
		ContainerLeft: l.ContainerLeft,
		TopInset:      l.TopInset,
		BoxWidth:      l.BoxWidth,
		BoxPadding:    l.BoxPadding,
		DefaultMargin: l.MinMargin,
	}
}

// LayoutOptions returns options margin boxes are laid out with.
func (e *LocalEnv) LayoutOptions() marginbox.Options {
	return marginbox.Options{
		TopInset:           e.Cfg.Layout.TopInset,
		MinMargin:          e.Cfg.Layout.MinMargin,
		ActiveColor:        e.Cfg.Style.ActiveColor,
		NeutralColor:       e.Cfg.Style.NeutralColor,
		TemplatePath:       e.Cfg.Style.TemplatePath,
		ShowResolved:       e.Cfg.Style.ShowResolved,
		ShowTrackedChanges: e.Cfg.Style.ShowTrackedChanges,
	}
}
