package domain

// KnownFilters lists the host extension points that descriptors usually target.
// Other well-formed names are accepted, since host plugins may declare their own.
var KnownFilters = map[string]string{
	"CLI_COMMANDS":           "Additional command-line subcommands",
	"COMMANDS_INIT":          "Service initialisation tasks",
	"COMMANDS_PRE_INIT":      "Tasks run before service initialisation",
	"COMPOSE_MOUNTS":         "Bind-mounts derived from host folder names",
	"CONFIG_DEFAULTS":        "Configuration defaults",
	"CONFIG_OVERRIDES":       "Overrides of core or plugin configuration",
	"CONFIG_UNIQUE":          "Generated-once configuration such as secrets",
	"ENV_PATCHES":            "Named patches inserted into generated files",
	"ENV_TEMPLATE_FILTERS":   "Extra template filters",
	"ENV_TEMPLATE_ROOTS":     "Template root directories",
	"ENV_TEMPLATE_TARGETS":   "Template source and destination pairs",
	"ENV_TEMPLATE_VARIABLES": "Extra template variables",
	"IMAGES_BUILD":           "Images built by the images build command",
	"IMAGES_PULL":            "Images pulled by the images pull command",
	"IMAGES_PUSH":            "Images pushed by the images push command",
}

// IsKnownFilter reports whether name is one of the host extension points.
func IsKnownFilter(name string) bool {
	_, ok := KnownFilters[name]
	return ok
}
