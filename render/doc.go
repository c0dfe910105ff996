// Package render translates directive strings produced by the reasoning
// engine into structured outgoing platform messages.
//
// A directive is a plain string with an optional recognized prefix tag
// (STICKER, IMAGE, IMAGEMAP, AUDIO, VIDEO, MODE, a bare https:// URL).
// Rendering is total: every malformed or untagged directive falls back to a
// plain text message, never an error.
package render
