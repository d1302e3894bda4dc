package ceiling

import (
	"math"

	"github.com/matzehuels/ceilplan/pkg/errors"
)

// Validate checks c against the room and reports the first problem found.
// The lighting calculator does not call it; it is the gate callers use
// before computing a layout.
func (c *Config) Validate() error {
	if err := c.Room.Validate(); err != nil {
		return err
	}

	switch c.Type {
	case TypePlain:
		if c.Plain == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "plain ceiling configuration is missing")
		}
		return c.Plain.Validate(c.Room)
	case TypePeripheral:
		if c.Peripheral == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "peripheral ceiling configuration is missing")
		}
		return c.Peripheral.Validate(c.Room)
	case TypeIsland:
		if c.Island == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "island ceiling configuration is missing")
		}
		return c.Island.Validate(c.Room)
	case TypeCombined:
		if c.Combined == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "combined ceiling configuration is missing")
		}
		return c.Combined.Validate(c.Room)
	}
	return errors.New(errors.ErrCodeInvalidConfig, "unknown ceiling type %q", c.Type)
}

// Validate checks that all room dimensions are positive.
func (r Room) Validate() error {
	if !(r.Width > 0) || !(r.Length > 0) || !(r.Height > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "all room dimensions must be positive numbers")
	}
	return nil
}

func (c Cove) validate() error {
	if c.CoveLight && len(c.CovePositions) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "select at least one position for cove lighting")
	}
	for _, p := range c.CovePositions {
		if p != CoveInner && p != CoveOuter {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown cove position %q", p)
		}
	}
	return nil
}

// Validate checks p's dimensions and that it fits inside r.
func (p Plain) Validate(r Room) error {
	if !(p.Width > 0) || !(p.Length > 0) || p.LeftOffset < 0 || p.TopOffset < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "plain ceiling dimensions must be positive numbers")
	}
	if p.Width+p.LeftOffset > r.Width {
		return errors.New(errors.ErrCodeInvalidConfig, "ceiling width plus left offset exceeds room width")
	}
	if p.Length+p.TopOffset > r.Length {
		return errors.New(errors.ErrCodeInvalidConfig, "ceiling length plus top offset exceeds room length")
	}
	if err := errors.ValidateLightCount("plain", p.LightCount); err != nil {
		return err
	}
	return p.Cove.validate()
}

// Validate checks the band width and side selection against r.
func (p Peripheral) Validate(r Room) error {
	if err := errors.ValidatePositive("peripheral band width", p.Width); err != nil {
		return err
	}
	if p.Width > math.Min(r.Width, r.Length)/2 {
		return errors.New(errors.ErrCodeInvalidConfig, "peripheral band width cannot exceed half the shorter room side")
	}
	if p.Sides.Count() == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one side must be selected")
	}
	if err := errors.ValidateLightCount("peripheral", p.LightCount); err != nil {
		return err
	}
	return p.Cove.validate()
}

// Validate checks the shape-specific dimensions and that the island's
// bounding box fits inside r.
func (i Island) Validate(r Room) error {
	switch i.Shape.Family() {
	case FamilyRectangle:
		if err := errors.ValidatePositive("island width", i.Width); err != nil {
			return err
		}
		if err := errors.ValidatePositive("island length", i.Length); err != nil {
			return err
		}
		if i.Shape.IsCutout() && i.Sides != nil && i.Sides.Count() == 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "at least one cutout side must be selected")
		}
	case FamilyCircle:
		if err := errors.ValidatePositive("island radius", i.Radius); err != nil {
			return err
		}
	case FamilyOval:
		rx, ry := i.Radii()
		if err := errors.ValidatePositive("island x radius", rx); err != nil {
			return err
		}
		if err := errors.ValidatePositive("island y radius", ry); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown island shape %q", i.Shape)
	}

	if i.Shape.IsCutout() {
		if err := errors.ValidatePositive("cutout width", i.CutoutWidth); err != nil {
			return err
		}
	}
	if i.LeftOffset < 0 || i.TopOffset < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "island offsets cannot be negative")
	}

	w, l := i.Bounds()
	if i.LeftOffset+w > r.Width {
		return errors.New(errors.ErrCodeInvalidConfig, "island exceeds room width")
	}
	if i.TopOffset+l > r.Length {
		return errors.New(errors.ErrCodeInvalidConfig, "island exceeds room length")
	}
	if err := errors.ValidateLightCount("island", i.LightCount); err != nil {
		return err
	}
	return i.Cove.validate()
}

// Validate checks that at least one layer is enabled and that every
// enabled layer is present and valid.
func (c Combined) Validate(r Room) error {
	if !c.UsePlain && !c.UsePeripheral && !c.UseIsland {
		return errors.New(errors.ErrCodeInvalidConfig, "enable at least one ceiling layer")
	}
	if c.UsePlain {
		if c.Plain == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "plain layer is enabled but not configured")
		}
		if err := c.Plain.Validate(r); err != nil {
			return err
		}
	}
	if c.UsePeripheral {
		if c.Peripheral == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "peripheral layer is enabled but not configured")
		}
		if err := c.Peripheral.Validate(r); err != nil {
			return err
		}
	}
	if c.UseIsland {
		if c.Island == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "island layer is enabled but not configured")
		}
		if err := c.Island.Validate(r); err != nil {
			return err
		}
	}
	return nil
}
