package dotEnvLoader

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvLoader merges .env files into the process environment. Variables already
// set in the process win over the files.
type DotEnvLoader struct {
	// Files defaults to ".env".
	Files []string
}

func (l DotEnvLoader) Load() (map[string]string, error) {
	if err := godotenv.Load(l.Files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	envs := make(map[string]string)
	for _, env := range os.Environ() {
		key, val, _ := strings.Cut(env, "=")
		envs[key] = val
	}
	return envs, nil
}
