// Package config is the configuration resolution engine for databook.
//
// Configuration is assembled from layered sources in the following
// precedence order (later sources override earlier ones):
//  1. Bundled defaults (embedded template)
//  2. User configuration file ($DATABOOK_HOME/databook.cfg or $DATABOOK_CONFIG)
//  3. Environment variables (DATABOOK__<SECTION>__<KEY>)
//
// The merged raw values pass through placeholder interpolation, type
// coercion, and schema validation; every problem found anywhere in the
// pipeline is reported together in a single [ResolutionError]. On success the
// result is an immutable [Config] that collaborators consume read-only.
//
// The main entry points are [Load] for one-shot startup resolution and
// [NewStore] for a reloadable snapshot holder.
package config
