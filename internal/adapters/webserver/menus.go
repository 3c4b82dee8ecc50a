package webserver

import (
	"context"
	"drone-flight-planner/internal/domain"
	"drone-flight-planner/internal/platform/obs"
	"fmt"
)

type menuResponse []struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Menu     []struct {
		Item  string `json:"item"`
		Pence int    `json:"pence"`
	} `json:"menu"`
}

func (c *Client) GetMenus(ctx context.Context) (_ []domain.Shop, err error) {
	defer obs.Time(ctx, "webserver.GetMenus")(&err)

	var decoded menuResponse
	if err := c.getJSON(ctx, "/menus/menus.json", &decoded); err != nil {
		return nil, fmt.Errorf("get menus: %w", err)
	}

	shops := make([]domain.Shop, 0, len(decoded))
	for _, s := range decoded {
		shop := domain.Shop{
			Name:     s.Name,
			Location: s.Location,
			Items:    make([]domain.MenuItem, 0, len(s.Menu)),
		}
		for _, it := range s.Menu {
			shop.Items = append(shop.Items, domain.MenuItem{Name: it.Item, Pence: it.Pence})
		}
		shops = append(shops, shop)
	}

	return shops, nil
}
