package pipeline

// Options is a stage's decoded configuration bag, filled by FromYAML the
// way the teacher's plugin.Options is filled via WithMapping from a
// decoded JSON map: a loosely typed map plus small typed accessors, since
// each registered stage interprets its own keys.
type Options map[string]any

// Float64 reads a float64 option, or def if absent/of the wrong type.
func (o Options) Float64(key string, def float64) float64 {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return def
}

// Int reads an int option, or def if absent/of the wrong type.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		}
	}
	return def
}

// String reads a string option, or def if absent/of the wrong type.
func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok {
		return v
	}
	return def
}
