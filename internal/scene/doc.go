// Package scene builds the CPU-side geometry of the visualization: the star
// sphere, the accretion-disk annulus, the tileable noise tile and the orbit
// camera with its projection helpers.
//
// Nothing here touches the GPU; [render] uploads what this package produces.
package scene
