package generator

import "github.com/toyz/decoratable/internal/models"

// ResolveAccess maps the contract visibility onto the wrapper.
//
// A public contract gets an open wrapper so that code in other modules can
// subclass it and layer behavior around the forwarded calls. Initializers
// cannot be open, so they stay public. Every other level passes through.
func ResolveAccess(contract models.Visibility) models.AccessResolution {
	if contract == models.VisibilityPublic {
		return models.AccessResolution{
			Type:        models.VisibilityOpen,
			Initializer: models.VisibilityPublic,
			Members:     models.VisibilityOpen,
		}
	}
	return models.AccessResolution{
		Type:        contract,
		Initializer: contract,
		Members:     contract,
	}
}
