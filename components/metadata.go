package components

import "fmt"

// RGB is a display color.
type RGB struct {
	R, G, B uint8
}

// FieldDescriptor describes a component field for debug display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Min    float64 // Minimum value (for bars)
	Max    float64 // Maximum value (for bars)
	Group  string  // Logical grouping
}

// CellFieldDescriptors returns metadata for Cell fields.
func CellFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "energy", Label: "Energy", Format: "%.4f", Min: 0, Max: 1, Group: "vitals"},
		{ID: "age", Label: "Age", Format: "%.4f", Min: 0, Max: 1, Group: "vitals"},
		{ID: "consumption", Label: "Consumption", Format: "%.4f", Group: "vitals"},
		{ID: "stress", Label: "Stress", Format: "%.4f", Min: 0, Max: 1, Group: "vitals"},
		{ID: "temperature", Label: "Temperature", Format: "%d", Min: 0, Max: 4, Group: "environment"},
		{ID: "capacity", Label: "Capacity", Format: "%.4f", Min: 0, Max: 1, Group: "traits"},
		{ID: "production", Label: "Production", Format: "%.4f", Group: "traits"},
		{ID: "resilience", Label: "Resilience", Format: "%.4f", Min: 0, Max: 1, Group: "traits"},
		{ID: "lifespan", Label: "Lifespan", Format: "%.4f", Min: 0, Max: 1, Group: "traits"},
		{ID: "evolution", Label: "Evolution", Format: "%.4f", Min: 0, Max: 1, Group: "traits"},
	}
}

// ProducerFieldDescriptors returns metadata for Producer fields.
func ProducerFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "elevation", Label: "Elevation", Format: "%d", Min: 0, Max: 4, Group: "environment"},
		{ID: "humidity", Label: "Humidity", Format: "%d", Min: 0, Max: 4, Group: "environment"},
		{ID: "radioactivity", Label: "Radioactivity", Format: "%d", Min: 0, Max: 9, Group: "environment"},
		{ID: "productivity", Label: "Productivity", Format: "%d", Min: 0, Max: 9, Group: "environment"},
		{ID: "pollen_rate", Label: "Pollen Rate", Format: "%.4f", Min: 0, Max: 1, Group: "traits"},
		{ID: "panic", Label: "Panic", Format: "%d", Min: -3, Max: 3, Group: "state"},
	}
}

// DistributorFieldDescriptors returns metadata for Distributor fields.
func DistributorFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "max_speed", Label: "Max Speed", Format: "%.4f", Min: 0, Max: 1, Group: "traits"},
		{ID: "carrying", Label: "Carrying", Format: "%d", Min: 0, Max: 5, Group: "state"},
		{ID: "detection", Label: "Detection", Format: "%d", Group: "traits"},
	}
}

// ProducerLabel returns the short label of a Producer.
func ProducerLabel(c *Cell, p *Producer) string {
	return fmt.Sprintf("PD-%d%d%d", p.Elevation, c.Temperature, p.Humidity)
}

// ProducerColor derives a Producer's color from its environment levels.
func ProducerColor(c *Cell, p *Producer) RGB {
	return RGB{R: levelChannel(p.Elevation), G: levelChannel(c.Temperature), B: levelChannel(p.Humidity)}
}

func levelChannel(level int) uint8 {
	if level < 0 {
		level = 0
	}
	if level > 4 {
		level = 4
	}
	return uint8(level * 255 / 4)
}

var distributorColors = map[int]RGB{
	5: {255, 182, 193},
	4: {255, 209, 220},
	3: {255, 105, 180},
	2: {255, 20, 147},
	1: {199, 21, 133},
}

// DistributorLabel returns the short label of a Distributor.
func DistributorLabel(d *Distributor) string {
	return fmt.Sprintf("D-%d", d.MaxCarry)
}

// DistributorColor returns a Distributor's color by carry amount.
func DistributorColor(d *Distributor) RGB {
	if c, ok := distributorColors[d.MaxCarry]; ok {
		return c
	}
	return distributorColors[1]
}

// ResourceLabel returns the short label of a resource.
func ResourceLabel(r *Resource) string {
	switch r.Kind {
	case ResourceFood:
		return "F"
	case ResourceCorpse:
		return "C"
	case ResourcePollen:
		return "P"
	}
	return "?"
}

// ResourceColor returns a resource's color; Food and Corpse fade once
// prolificacy drops below depleted.
func ResourceColor(r *Resource, depleted float64) RGB {
	switch r.Kind {
	case ResourceFood:
		if r.Prolificacy < depleted {
			return RGB{139, 69, 19}
		}
		return RGB{34, 139, 34}
	case ResourceCorpse:
		if r.Prolificacy < depleted {
			return RGB{128, 128, 128}
		}
		return RGB{128, 0, 0}
	case ResourcePollen:
		return RGB{255, 215, 0}
	}
	return RGB{}
}
