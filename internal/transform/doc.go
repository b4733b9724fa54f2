// Package transform rewrites raw candidate items into polished articles via
// a generative-text backend, with resilient response parsing and a
// deterministic local fallback when no credentials are configured.
package transform
