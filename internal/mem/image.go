package mem

import "fmt"

// ConfigError reports an image that cannot be placed at the requested origin.
// Memory is never touched when it is returned.
type ConfigError struct {
	Origin uint16
	Length int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid image (origin $%04X, %d bytes): %s", e.Origin, e.Length, e.Reason)
}

type loadOptions struct {
	allowVectors bool
}

type LoadOption func(*loadOptions)

// AllowVectors lets an image extend into $FFFA-$FFFF and so install its own
// interrupt and reset vectors.
func AllowVectors() LoadOption {
	return func(o *loadOptions) {
		o.allowVectors = true
	}
}

// LoadImage copies img verbatim starting at origin.
//
// Unless the image covers $FFFC-$FFFD itself, the RESET vector is pointed at
// origin afterwards.
func (m *Memory) LoadImage(img []byte, origin uint16, opts ...LoadOption) error {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	end := int(origin) + len(img)
	switch {
	case len(img) == 0:
		return &ConfigError{Origin: origin, Length: 0, Reason: "image is empty"}
	case end > Size:
		return &ConfigError{Origin: origin, Length: len(img), Reason: "image runs past $FFFF"}
	case !o.allowVectors && end > int(VectorStart):
		return &ConfigError{Origin: origin, Length: len(img), Reason: "image overlaps the vector region at $FFFA"}
	}

	for i, b := range img {
		m.Write8(origin+uint16(i), b)
	}

	// only when the image leaves both RESET bytes alone
	resetLo := int(VectorReset)
	if end <= resetLo || int(origin) > resetLo+1 {
		m.SetVector(VectorReset, origin)
	}
	return nil
}
