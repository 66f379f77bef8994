package viewer

import "github.com/achilleasa/karma/volume"

// DisplayConfig selects what Frame draws. It is an immutable value: the
// With* methods return modified copies.
type DisplayConfig struct {
	volumes    map[volume.Key]bool
	boundaries bool
	hierarchy  bool
	minDepth   int
	maxDepth   int
}

// The default configuration draws the boundary edges and the hierarchy but
// no volumes.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		boundaries: true,
		hierarchy:  true,
	}
}

// Check whether a volume is drawn.
func (c DisplayConfig) VolumeEnabled(key volume.Key) bool {
	return c.volumes[key]
}

// Get the keys of the drawn volumes in StandardKeys order.
func (c DisplayConfig) EnabledVolumes() []volume.Key {
	var keys []volume.Key
	for _, key := range volume.StandardKeys {
		if c.volumes[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

func (c DisplayConfig) BoundariesEnabled() bool { return c.boundaries }

func (c DisplayConfig) HierarchyEnabled() bool { return c.hierarchy }

// Get the requested hierarchy draw range. The range is clamped against the
// active hierarchy when drawing.
func (c DisplayConfig) DepthRange() (int, int) {
	return c.minDepth, c.maxDepth
}

// Return a copy with the given volume toggled on or off.
func (c DisplayConfig) WithVolume(key volume.Key, enabled bool) DisplayConfig {
	volumes := make(map[volume.Key]bool, len(c.volumes)+1)
	for k, v := range c.volumes {
		if v {
			volumes[k] = true
		}
	}
	if enabled {
		volumes[key] = true
	} else {
		delete(volumes, key)
	}
	c.volumes = volumes
	return c
}

// Return a copy with every standard volume toggled on or off.
func (c DisplayConfig) WithAllVolumes(enabled bool) DisplayConfig {
	for _, key := range volume.StandardKeys {
		c = c.WithVolume(key, enabled)
	}
	return c
}

func (c DisplayConfig) WithBoundaries(enabled bool) DisplayConfig {
	c.boundaries = enabled
	return c
}

func (c DisplayConfig) WithHierarchy(enabled bool) DisplayConfig {
	c.hierarchy = enabled
	return c
}

func (c DisplayConfig) WithDepthRange(minDepth, maxDepth int) DisplayConfig {
	c.minDepth, c.maxDepth = minDepth, maxDepth
	return c
}
