package agent

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Params holds the key=value pairs of an agent config. Builders pop the keys
// they understand; whatever is left over is rejected.
type Params map[string]string

// PopInt removes key and parses its value, or returns def when it is absent.
func (p Params) PopInt(key string, def int) (int, error) {
	value, ok := p[key]
	if !ok {
		return def, nil
	}
	delete(p, key)
	n, err := strconv.Atoi(value)
	if err != nil {
		return def, errors.Wrapf(err, "failed to parse %s=%q as an integer", key, value)
	}
	return n, nil
}

// PopBool removes key. A key without a value is true.
func (p Params) PopBool(key string, def bool) (bool, error) {
	value, ok := p[key]
	if !ok {
		return def, nil
	}
	delete(p, key)
	switch strings.ToLower(value) {
	case "", "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return def, errors.Errorf("failed to parse %s=%q as a bool", key, value)
}

// PopString removes key and returns its value, or def when it is absent.
func (p Params) PopString(key string, def string) string {
	value, ok := p[key]
	if !ok {
		return def
	}
	delete(p, key)
	return value
}

func (p Params) clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

func (p Params) keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
