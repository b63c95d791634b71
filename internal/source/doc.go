// Package source defines the data source connectors offered by the
// connection dialog.
//
// A Descriptor carries everything the dialog needs to show one connector:
// display name, icon, optional warning/description/docs link, an optional
// disabled reason, and the ordered form fields with their defaults and
// validator rules.
//
// Connectors come from three places, merged in this order:
//   - Builtin(): the connectors shipped with the application
//   - the user's config file (config.Registry.Connectors)
//   - mDNS discovery (discovery.Descriptors)
//
// # Validation
//
// Field values are validated with small named rules ("required", "port",
// "hostname", "url:ws,wss") compiled by ValidatorFor. Failed checks return a
// *ValidationError whose Message is shown next to the field.
package source
