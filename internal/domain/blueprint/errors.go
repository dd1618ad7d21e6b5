package blueprint

import "errors"

var (
	// ErrBlueprintNotFound indicates an item name matched no catalog entry
	ErrBlueprintNotFound = errors.New("blueprint not found")
)
