// Package pipeline runs batch renames over a directory tree: discover image
// files, plan each one, reject conflicting outputs, execute the renames in a
// safe order, journal them, and report a summary. Undo replays the most
// recent journaled run backwards.
package pipeline
