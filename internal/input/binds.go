package input

import (
	"sync"
)

// Feature names used across the bind and press-state maps.
const (
	FeatureAim              = "aim"
	FeatureESP              = "esp"
	FeatureTrigger          = "trigger"
	FeatureRadar            = "radar"
	FeaturePrediction       = "prediction"
	FeaturePredictionVisual = "prediction_visual"
)

// Binds is the thread-safe view of {feature → pressed} and {feature → key}
// shared between the asynchronous global input listener (writer) and the
// tick loop (reader). A state change becomes visible no later than the next
// tick's read.
type Binds struct {
	mu      sync.RWMutex
	pressed map[string]bool
	keys    map[string]string
	armed   string // feature waiting to capture its next bind, "" when none
}

// NewBinds creates an empty bind store.
func NewBinds() *Binds {
	return &Binds{
		pressed: make(map[string]bool),
		keys:    make(map[string]string),
	}
}

// IsPressed reports the current hold state of a feature's bound input.
func (b *Binds) IsPressed(feature string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pressed[feature]
}

// SetPressed records the hold state of a feature.
func (b *Binds) SetPressed(feature string, pressed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pressed[feature] = pressed
}

// Key returns the input bound to a feature.
func (b *Binds) Key(feature string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	k, ok := b.keys[feature]
	return k, ok
}

// Bind assigns an input to a feature. A key binds to at most one feature:
// any other feature holding the same key is unbound.
func (b *Binds) Bind(feature, key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bindLocked(feature, key)
}

func (b *Binds) bindLocked(feature, key string) {
	for f, k := range b.keys {
		if k == key && f != feature {
			delete(b.keys, f)
			delete(b.pressed, f)
		}
	}
	b.keys[feature] = key
}

// ArmCapture makes the next HandleInput press become the feature's bind.
func (b *Binds) ArmCapture(feature string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.armed = feature
}

// HandleInput is the listener's entry point for every global key or button
// event. An armed capture consumes the press as a new bind; otherwise the
// event updates the hold state of whichever feature the key is bound to.
func (b *Binds) HandleInput(key string, pressed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.armed != "" && pressed {
		b.bindLocked(b.armed, key)
		b.armed = ""
		return
	}

	for feature, k := range b.keys {
		if k == key {
			b.pressed[feature] = pressed
		}
	}
}

// Snapshot returns a copy of the current keybind map.
func (b *Binds) Snapshot() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string]string, len(b.keys))
	for f, k := range b.keys {
		out[f] = k
	}
	return out
}
