// Package scenefile loads drawings from TOML, YAML and JSON documents.
//
// # Overview
//
// A scene document describes a drawing declaratively: a default style and a
// list of items, each a primitive or a group of further items. The same
// structure is accepted in all three formats:
//
//	[style]
//	stroke = "black"
//
//	[[items]]
//	type = "line"
//	from = [10.0, 10.0]
//	to = [100.0, 60.0]
//	style = { stroke = "red" }
//	transforms = [ { op = "rotate", angle = 30.0 } ]
//
//	[[items]]
//	type = "group"
//	frame = [ { op = "translate", dx = 50.0 } ]
//
//	  [[items.items]]
//	  type = "circle"
//	  center = [0.0, 0.0]
//	  radius = 5.0
//
// # Items
//
// Each item has a type and type-specific fields:
//
//   - line: from, to
//   - circle: center, radius or radii = [rx, ry], rotation
//   - rectangle: origin, width, height, rotation
//   - polyline: points, closed
//   - arc: center, radius, start, end (degrees)
//   - text: at, content, rotation
//   - group: items, frame
//
// Every item may carry a style table and a transforms list. Transforms are
// applied in order after the item (and, for groups, its children) is built.
// A group frame is a transforms list too, composed into the group's frame
// instead of being applied to the children.
//
// # Transforms
//
//   - translate: dx, dy
//   - rotate: angle, center
//   - scale: sx, sy (defaults to sx), center
//   - mirror: p1, p2
//   - flip_lr, flip_ud
//
// Without a center, rotate and scale act about the item's centroid; in a
// frame they act about the origin.
//
// # Errors
//
// Unknown keys, unknown item types, missing fields and invalid styles are
// reported as INVALID_SCENE errors naming the offending item, for example
// "items[2].items[0]: circle needs radius or radii".
package scenefile
