// Package imagepath decomposes a VFX image path into base name, frame token,
// and version token, and regenerates the path after any of them changes.
//
// Pipeline (leaf to root):
//
//	path ─► SplitPath ─► SplitName ─► Frame / Version ─► Descriptor
//
// An [Image] stores only the path string. Every getter derives its result
// from that string, and every setter builds a new string and re-runs the
// whole pipeline on it. There is no incremental patching.
//
// Frame tokens come in three mutually exclusive surface forms:
//
//	digits    comp.0042.exr
//	notation  comp.%04d.exr
//	hash      comp.####.exr
//
// Version markers are searched in the base name and in the ancestor
// directory names, nearest first:
//
//	/show/v3/shot010/comp_v3.0042.exr
//	      ^^ level 2      ^^ file
//
// The package never touches the filesystem and does no logging.
package imagepath
