// Package template defines the template rendering seam used by the HTML
// renderers and ships a pongo2-backed implementation in the gotemplate
// subpackage.
package template
