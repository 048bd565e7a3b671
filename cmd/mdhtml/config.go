package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/mdhtml/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"gopkg.in/yaml.v3"
)

// loadConfig reads a YAML configuration file into conf. Nested mappings are
// flattened into dotted keys, i.e.
//
//	markdown:
//	  wrap-column: 100
//
// sets key "markdown.wrap-column". Scalars are stored in their string form.
func loadConfig(path string, conf testconfig.Conf) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.WrapError(err, core.EMISSING, "config file %s does not exist", path)
		}
		return core.WrapError(err, core.EINVALID, "cannot read config file %s", path)
	}
	var tree map[string]interface{}
	if err = yaml.Unmarshal(data, &tree); err != nil {
		return core.WrapError(err, core.EINVALID, "config file %s is not valid YAML", path)
	}
	flatten("", tree, conf)
	tracer().Debugf("config file %s loaded", path)
	return nil
}

func flatten(prefix string, tree map[string]interface{}, conf testconfig.Conf) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch x := v.(type) {
		case map[string]interface{}:
			flatten(key, x, conf)
		case nil:
			// key without value
		default:
			conf[key] = fmt.Sprint(x)
		}
	}
}
