// Package manifest handles parsing and validation of plugin manifests
// (plugin.yaml). A manifest names a plugin, its version, the component API
// range it was built against, the plugins it requires and the component
// types it provides. Manifests are validated against an embedded JSON
// schema before the loader trusts them.
package manifest
