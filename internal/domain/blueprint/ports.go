package blueprint

// RecipeProvider resolves item names against the offline blueprint catalog.
//
// Name matching is exact case-insensitive first, then first case-insensitive
// substring match; the winner among multiple substring matches is
// unspecified.
type RecipeProvider interface {
	// Resolve returns the recipe for a named blueprint, or ErrBlueprintNotFound
	Resolve(name string) (*Recipe, error)

	// ResolveTypeID returns the type id for a named blueprint, or ErrBlueprintNotFound
	ResolveTypeID(name string) (int64, error)
}
