package ports

import (
	"context"

	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"
)

// AGURepository persists the AGU root row. Tanks and contacts are written
// through their own repositories but are loaded back by Get.
type AGURepository interface {
	// Add stores the AGU scalar attributes. Tanks and contacts are ignored.
	Add(ctx context.Context, a *agu.AGU) error

	// Update stores the mutable attributes: flags, notes, image and levels.
	Update(ctx context.Context, a *agu.AGU) error

	// Get returns the full aggregate, tanks and contacts included.
	Get(ctx context.Context, cui kernel.CUI) (*agu.AGU, error)

	Exists(ctx context.Context, cui kernel.CUI) (bool, error)

	// GetAllActive returns every AGU with isActive set, without tanks or contacts.
	GetAllActive(ctx context.Context) ([]*agu.AGU, error)

	// ExistsByDNO reports whether any AGU references the DNO.
	ExistsByDNO(ctx context.Context, dnoID kernel.UUID) (bool, error)

	// Delete removes the AGU and everything it owns.
	Delete(ctx context.Context, cui kernel.CUI) (bool, error)
}

// TankRepository persists tanks of one AGU, keyed by (cui, number).
type TankRepository interface {
	Add(ctx context.Context, cui kernel.CUI, tank *agu.Tank) error
	Update(ctx context.Context, cui kernel.CUI, tank *agu.Tank) (bool, error)
	Delete(ctx context.Context, cui kernel.CUI, number int) (bool, error)
	GetByAGU(ctx context.Context, cui kernel.CUI) ([]*agu.Tank, error)
}

// ContactRepository persists contacts of one AGU.
type ContactRepository interface {
	Add(ctx context.Context, cui kernel.CUI, contact *agu.Contact) error
	Delete(ctx context.Context, cui kernel.CUI, id kernel.UUID) (bool, error)
	GetByAGU(ctx context.Context, cui kernel.CUI) ([]*agu.Contact, error)

	// Exists reports whether the AGU already has a contact with this phone and type.
	Exists(ctx context.Context, cui kernel.CUI, phone string, contactType agu.ContactType) (bool, error)
}
