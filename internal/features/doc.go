// Package features implements optional build behaviors that hook into stage
// lifecycle points: a navigation bar, a post listing and tag rendering.
package features
