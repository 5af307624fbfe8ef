package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "toml":
		return tomlTemplate, nil
	case "yaml", "yml":
		return yamlTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const tomlTemplate = `# qualified frame name: <namespace>.<frame>
frame = "numeric.Frame"
# hex (whitespace ignored) or binary
input_format = "hex"
# octets fed per decode call, 0 feeds the whole input at once
chunk_size = 0
# largest size prefix accepted, 0 keeps the 8 MiB default
max_frame_bytes = 0
log_level = "info"
`

const yamlTemplate = `# qualified frame name: <namespace>.<frame>
frame: numeric.Frame
# hex (whitespace ignored) or binary
input_format: hex
# octets fed per decode call, 0 feeds the whole input at once
chunk_size: 0
# largest size prefix accepted, 0 keeps the 8 MiB default
max_frame_bytes: 0
log_level: info
`
