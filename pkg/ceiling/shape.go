package ceiling

import "fmt"

// Shape is the island outline, optionally with a central cutout.
type Shape string

const (
	ShapeRectangle         Shape = "rectangle"
	ShapeCircle            Shape = "circle"
	ShapeOval              Shape = "oval"
	ShapeRectangularCutout Shape = "rectangular-cutout"
	ShapeCircularCutout    Shape = "circular-cutout"
	ShapeOvalCutout        Shape = "oval-cutout"
)

// Shapes lists all island shapes in display order.
var Shapes = []Shape{
	ShapeRectangle, ShapeCircle, ShapeOval,
	ShapeRectangularCutout, ShapeCircularCutout, ShapeOvalCutout,
}

// Family groups a shape with its cutout variant.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyRectangle
	FamilyCircle
	FamilyOval
)

func (f Family) String() string {
	switch f {
	case FamilyRectangle:
		return "rectangle"
	case FamilyCircle:
		return "circle"
	case FamilyOval:
		return "oval"
	}
	return "unknown"
}

// Family returns the outline family of s.
func (s Shape) Family() Family {
	switch s {
	case ShapeRectangle, ShapeRectangularCutout:
		return FamilyRectangle
	case ShapeCircle, ShapeCircularCutout:
		return FamilyCircle
	case ShapeOval, ShapeOvalCutout:
		return FamilyOval
	}
	return FamilyUnknown
}

// IsCutout reports whether s has an open center.
func (s Shape) IsCutout() bool {
	switch s {
	case ShapeRectangularCutout, ShapeCircularCutout, ShapeOvalCutout:
		return true
	}
	return false
}

// ParseShape converts a string to a Shape.
func ParseShape(s string) (Shape, error) {
	for _, sh := range Shapes {
		if string(sh) == s {
			return sh, nil
		}
	}
	return "", fmt.Errorf("unknown island shape %q", s)
}
