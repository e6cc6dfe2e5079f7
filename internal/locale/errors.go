package locale

import "errors"

// ErrInvalidLocale is returned by Signal.Set for an empty or blank code.
var ErrInvalidLocale = errors.New("locale: invalid code")
