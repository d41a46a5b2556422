package handlers

import "kalakrutiassociates.com/web/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	GTMContainerID   string // e.g. GTM-XXXXXXX
}

// AnalyticsFrom copies the configured ids.
func AnalyticsFrom(c config.Analytics) Analytics {
	return Analytics{GA4MeasurementID: c.GA4, GTMContainerID: c.GTM}
}

// Enabled reports whether any tag should be emitted.
func (a Analytics) Enabled() bool { return a.GA4MeasurementID != "" || a.GTMContainerID != "" }
