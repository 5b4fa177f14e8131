// Package preset provides card templates.
//
// Five templates are built in. Users add or override templates in a TOML
// file:
//
//	[[preset]]
//	name = "Forest"
//	description = "Deep greens"
//
//	[preset.patch]
//	background_color = "#052e16"
//	border_radius = 10
//
//	[preset.patch.gradient]
//	enabled = true
//	kind = "linear"
//	from = "#166534"
//	to = "#052e16"
//	angle = 90
//
// A user preset with the same name as a built-in replaces it. Watch keeps a
// Library in sync with the file while the editor runs.
package preset
