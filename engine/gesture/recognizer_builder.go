package gesture

// RecognizerOption is a functional option for configuring a Recognizer.
type RecognizerOption func(*Recognizer)

// WithThreshold sets the distance in pixels a pressed pointer must travel before a drag starts.
// Negative values are treated as zero.
//
// Parameters:
//   - pixels: the dead-zone radius
//
// Returns:
//   - RecognizerOption: functional option to set the threshold
func WithThreshold(pixels float64) RecognizerOption {
	return func(r *Recognizer) {
		if pixels < 0 {
			pixels = 0
		}
		r.threshold = pixels
	}
}

// WithPointerTypes restricts the recognizer to the given pointer types.
// Samples of any other type are dropped before they reach the state machine.
// With no types given every pointer type is accepted.
//
// Parameters:
//   - types: accepted pointer types
//
// Returns:
//   - RecognizerOption: functional option to set accepted pointer types
func WithPointerTypes(types ...PointerType) RecognizerOption {
	return func(r *Recognizer) {
		if len(types) == 0 {
			r.accepted = nil
			return
		}
		r.accepted = make(map[PointerType]bool, len(types))
		for _, t := range types {
			r.accepted[t] = true
		}
	}
}
