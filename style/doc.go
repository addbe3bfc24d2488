// Package style holds the presentation vocabulary shared by fx components:
// ordered CSS declarations, element trees, color values and the single
// pose to transform-string conversion used by every 3D primitive.
//
// Components never touch a real DOM. They return [Element] trees that a
// host renders however it likes; [Element.HTML] produces markup for
// hosts that want it.
package style
