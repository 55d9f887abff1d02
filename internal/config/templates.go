package config

import (
	"fmt"
	"os"
)

// Template returns a commented config file holding the defaults.
func Template() string {
	return defaultTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(defaultTemplate), 0o600)
}

const defaultTemplate = `# pktdecode configuration

[decoder]
# nesting depth limit, 0 disables
max_depth = 512
# hex digits accepted per transmission, 0 disables
max_input_digits = 1048576

[output]
# value | versions | tree
mode = "value"
# text | json | yaml
format = "text"

[batch]
workers = 4
fail_fast = false
`
