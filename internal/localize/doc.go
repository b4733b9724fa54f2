// Package localize fans a transformed article out into the configured
// target languages, with optional speech synthesis per language. Both
// translation and synthesis are best-effort per language.
package localize
