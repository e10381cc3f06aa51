// Package planner decides, per image path, whether and how it is renamed
// for the configured operation, and builds a FilePlan the pipeline
// consumes. Planning is pure: it never touches the filesystem.
//
//   - set-version: write an explicit version into file and folder
//   - bump-version: increment the current version, keeping its width
//   - offset-frames: shift digit frame numbers, keeping their padding
package planner
