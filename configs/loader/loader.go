package loader

// ConfigLoader returns the raw environment a Config is built from.
type ConfigLoader interface {
	Load() (map[string]string, error)
}

// MapLoader serves a fixed environment.
type MapLoader map[string]string

func (l MapLoader) Load() (map[string]string, error) {
	envs := make(map[string]string, len(l))
	for key, val := range l {
		envs[key] = val
	}
	return envs, nil
}
