package moneymarket

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// ErrBondNotFound is returned for an id that is not in the book.
var ErrBondNotFound = errors.New("bond not found")

// BondBook is an editable list of bonds, identified by their id.
type BondBook struct {
	bonds []Bond
}

// NewBondBook returns a book holding a copy of bonds.
func NewBondBook(bonds []Bond) *BondBook {
	return &BondBook{bonds: slices.Clone(bonds)}
}

// Bonds returns a copy of the bonds in the book.
func (b *BondBook) Bonds() []Bond { return slices.Clone(b.bonds) }

// Len returns the number of bonds.
func (b *BondBook) Len() int { return len(b.bonds) }

func (b *BondBook) index(id string) int {
	return slices.IndexFunc(b.bonds, func(x Bond) bool { return x.ID == id })
}

// Get returns the bond with that id.
func (b *BondBook) Get(id string) (Bond, error) {
	i := b.index(id)
	if i < 0 {
		return Bond{}, fmt.Errorf("%w: %q", ErrBondNotFound, id)
	}
	return b.bonds[i], nil
}

// Add appends bond to the book, a random id is assigned if it has none. It
// returns the stored bond.
func (b *BondBook) Add(bond Bond) (Bond, error) {
	if bond.ID == "" {
		bond.ID = uuid.NewString()
	}
	if b.index(bond.ID) >= 0 {
		return Bond{}, fmt.Errorf("bond id %q already exists", bond.ID)
	}
	b.bonds = append(b.bonds, bond)
	return bond, nil
}

// Update replaces the bond with that id, keeping the id.
func (b *BondBook) Update(id string, bond Bond) error {
	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrBondNotFound, id)
	}
	bond.ID = id
	b.bonds[i] = bond
	return nil
}

// Remove deletes the bond with that id.
func (b *BondBook) Remove(id string) error {
	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrBondNotFound, id)
	}
	b.bonds = slices.Delete(b.bonds, i, i+1)
	return nil
}

// AssignIDs gives an id to every bond that has none, older bonds files were
// written without ids.
func (b *BondBook) AssignIDs() int {
	n := 0
	for i := range b.bonds {
		if b.bonds[i].ID == "" {
			b.bonds[i].ID = uuid.NewString()
			n++
		}
	}
	return n
}
