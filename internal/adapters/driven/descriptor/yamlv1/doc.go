// Package yamlv1 loads YAML v1 plugin descriptors.
//
// A descriptor file looks like:
//
//	name: myplugin
//	version: "1.0"
//	filters:
//	  - name: CONFIG_DEFAULTS
//	    op: add_items
//	    value:
//	      - [MYPLUGIN_DOCKER_IMAGE, "docker.io/myimage:latest"]
//
// The document is parsed into a yaml.Node tree and every node is classified
// into one of: mapping, sequence, string, number, boolean, null. Validation
// is a fixed sequence of checks against that classification, each failing
// with a *domain.LoadError of a specific kind.
package yamlv1
