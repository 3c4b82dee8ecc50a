package domain

import (
	"fmt"
	"strings"
)

// Standard delivery charge added to every order, in pence.
const BaseDeliveryCost = 50

type MenuItem struct {
	Name  string
	Pence int
}

// Shop is a participating shop, located by its three-word label.
type Shop struct {
	Name     string
	Location string
	Items    []MenuItem
}

type menuEntry struct {
	location string
	pence    int
}

// Menu indexes every shop's items by name; the first shop listing an item wins.
type Menu struct {
	items map[string]menuEntry
}

func NewMenu(shops []Shop) *Menu {
	m := &Menu{items: make(map[string]menuEntry)}
	for _, s := range shops {
		for _, it := range s.Items {
			if _, ok := m.items[it.Name]; ok {
				continue
			}
			m.items[it.Name] = menuEntry{location: s.Location, pence: it.Pence}
		}
	}
	return m
}

// DeliveryCost returns the base charge plus the price of every item.
// Repeated items are charged each time they appear.
func (m *Menu) DeliveryCost(items []string) (int, error) {
	cost := BaseDeliveryCost
	for _, name := range items {
		e, ok := m.items[name]
		if !ok {
			return 0, fmt.Errorf("delivery cost: item %q is not on any menu", name)
		}
		cost += e.pence
	}
	return cost, nil
}

// ShopLocations returns the distinct shop labels that sell the given items,
// in the order they are first needed.
func (m *Menu) ShopLocations(items []string) ([]string, error) {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(items))
	for _, name := range items {
		e, ok := m.items[name]
		if !ok {
			return nil, fmt.Errorf("shop locations: item %q is not on any menu", name)
		}
		loc := strings.TrimSpace(e.location)
		if _, ok := seen[loc]; ok {
			continue
		}
		seen[loc] = struct{}{}
		out = append(out, loc)
	}
	return out, nil
}
