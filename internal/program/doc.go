// Package program decodes program documents: YAML renderings of an
// already parsed and template-expanded program. Every node keeps the row and
// column it was written at, so diagnostics point back into the document.
//
// A statement or expression written as a mapping is named by its first key:
//
//	program:
//	  - class: Circle
//	    extends: Shape
//	    fields:
//	      - {field: radius, type: double, init: 1.0}
//	    methods:
//	      - function: area
//	        returns: double
//	        body:
//	          - return: {binary: "*", left: radius, right: radius}
//	  - set: c
//	    value: {new: Circle}
//
// Plain scalars are variables (or this), quoted scalars are string
// literals, and numbers, booleans and null are literals.
package program
