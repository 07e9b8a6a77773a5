package moneymarket

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestBondBook(t *testing.T) {
	book := NewBondBook([]Bond{testBond()})

	added, err := book.Add(Bond{Ticker: "GD30"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := uuid.Parse(added.ID); err != nil {
		t.Errorf("Add() id = %q, want a uuid: %v", added.ID, err)
	}
	if book.Len() != 2 {
		t.Errorf("Len() = %d, want 2", book.Len())
	}
	if _, err := book.Add(Bond{ID: "b1"}); err == nil {
		t.Errorf("Add() with an existing id should fail")
	}

	if err := book.Update(added.ID, Bond{Ticker: "GD30", CleanPrice: 60}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := book.Get(added.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.CleanPrice != 60 || got.ID != added.ID {
		t.Errorf("Get() = %+v, want the updated bond with its id", got)
	}

	if err := book.Remove("b1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if book.Len() != 1 {
		t.Errorf("Len() = %d, want 1", book.Len())
	}
	for _, err := range []error{book.Remove("b1"), book.Update("nope", Bond{})} {
		if !errors.Is(err, ErrBondNotFound) {
			t.Errorf("error = %v, want ErrBondNotFound", err)
		}
	}
	if _, err := book.Get("b1"); !errors.Is(err, ErrBondNotFound) {
		t.Errorf("Get() error = %v, want ErrBondNotFound", err)
	}
}

func TestBondBookCopies(t *testing.T) {
	bonds := []Bond{testBond()}
	book := NewBondBook(bonds)
	book.Update("b1", Bond{Ticker: "CHANGED"})
	if bonds[0].Ticker != "AL30" {
		t.Errorf("the book modified the slice it was built from")
	}
	out := book.Bonds()
	out[0].Ticker = "OUT"
	if got, _ := book.Get("b1"); got.Ticker != "CHANGED" {
		t.Errorf("Bonds() should return a copy")
	}
}

func TestBondBookAssignIDs(t *testing.T) {
	book := NewBondBook([]Bond{testBond(), {Ticker: "GD35"}, {Ticker: "GD38"}})
	if n := book.AssignIDs(); n != 2 {
		t.Errorf("AssignIDs() = %d, want 2", n)
	}
	for _, b := range book.Bonds() {
		if b.ID == "" {
			t.Errorf("%s has no id", b.Ticker)
		}
	}
}
