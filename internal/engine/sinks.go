package engine

// NopRenderSink discards rendering updates. Used when no overlay
// collaborator is attached.
type NopRenderSink struct{}

func (NopRenderSink) UpdateTarget(RenderData) {}
func (NopRenderSink) Clear()                  {}

// NopRadarSink discards radar updates.
type NopRadarSink struct{}

func (NopRadarSink) UpdateTargets([]RadarTarget) {}

// NopPredictionSink discards velocity-line updates.
type NopPredictionSink struct{}

func (NopPredictionSink) UpdateLine(VelocityLine) {}
func (NopPredictionSink) Clear()                  {}
