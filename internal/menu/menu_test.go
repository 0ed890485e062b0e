package menu

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"orderlens/internal/csvio"
	"orderlens/internal/model"
)

var keywords = map[string][]string{
	"spicy":   {"spicy", "chilli", "hot"},
	"noodles": {"noodle", "ramen"},
	"rice":    {"rice"},
	"fried":   {"fried", "crispy"},
	"soup":    {"soup", "broth"},
	"vegan":   {"vegan", "tofu"},
}

func writeMenu(t *testing.T, content string, latin1 bool) string {
	t.Helper()
	data := []byte(content)
	if latin1 {
		enc, err := charmap.ISO8859_1.NewEncoder().Bytes(data)
		if err != nil {
			t.Fatalf("encode latin-1: %v", err)
		}
		data = enc
	}
	path := filepath.Join(t.TempDir(), "menu_items.csv")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write menu: %v", err)
	}
	return path
}

func TestLoad_TagsFromNameAndTags(t *testing.T) {
	path := writeMenu(t, "Restaurant,Item Name,Tags,Price\n"+
		"Wok Inn,Chilli Beef Ramen,signature,8.90\n"+
		"Wok Inn,Plain Rice,,2.00\n", false)

	features, err := Load(path, keywords)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("got %d features", len(features))
	}
	first := features[0]
	if !first.Spicy.Value || !first.Noodles.Value {
		t.Fatalf("chilli ramen not tagged: %+v", first)
	}
	if first.Rice.Value {
		t.Fatalf("chilli ramen tagged as rice")
	}
	if !features[1].Rice.Value {
		t.Fatalf("plain rice not tagged")
	}
	if !first.ItemPrice.Valid || first.ItemPrice.Value != 8.90 {
		t.Fatalf("price = %+v", first.ItemPrice)
	}
}

func TestLoad_Latin1Encoding(t *testing.T) {
	path := writeMenu(t, "restaurant,item_name,price\nCafé Saigon,Crêpe Tofu,5.50\n", true)

	features, err := Load(path, keywords)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if features[0].Restaurant != "Café Saigon" {
		t.Fatalf("restaurant = %q, latin-1 not decoded", features[0].Restaurant)
	}
	if !features[0].Vegan.Value {
		t.Fatalf("tofu item not tagged vegan")
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeMenu(t, "restaurant,price\nWok Inn,4\n", false)
	if _, err := Load(path, keywords); err == nil {
		t.Fatalf("expected error for missing item_name")
	}
}

func TestProfiles(t *testing.T) {
	features := []model.MenuFeature{
		{Restaurant: "Wok Inn", Spicy: csvio.NewBool01(true), ItemPrice: csvio.NewFloat(8)},
		{Restaurant: "Wok Inn", Spicy: csvio.NewBool01(false), ItemPrice: csvio.NewFloat(4)},
		{Restaurant: "Wok Inn", Spicy: csvio.NewBool01(true)},
		{Restaurant: "Aroy Dee", Vegan: csvio.NewBool01(true)},
	}

	profiles := Profiles(features)
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles", len(profiles))
	}
	// sorted by name
	if profiles[0].Restaurant != "Aroy Dee" || profiles[1].Restaurant != "Wok Inn" {
		t.Fatalf("order: %q, %q", profiles[0].Restaurant, profiles[1].Restaurant)
	}
	wok := profiles[1]
	if !wok.SpicyRatio.Valid || wok.SpicyRatio.Value != 2.0/3.0 {
		t.Fatalf("spicy ratio = %+v", wok.SpicyRatio)
	}
	if !wok.AvgItemPrice.Valid || wok.AvgItemPrice.Value != 6 {
		t.Fatalf("avg price = %+v, want mean over priced items only", wok.AvgItemPrice)
	}
	if profiles[0].AvgItemPrice.Valid {
		t.Fatalf("restaurant with no priced items must have null avg price")
	}
}

func TestJoinProfiles(t *testing.T) {
	orders := []model.EnrichedOrder{
		{FactOrder: model.FactOrder{RestaurantID: csvio.NewInt(1)}},
		{FactOrder: model.FactOrder{RestaurantID: csvio.NewInt(2)}},
		{FactOrder: model.FactOrder{}},
	}
	restaurants := []model.DimRestaurant{
		{Restaurant: "Wok Inn", RestaurantID: 1},
		{Restaurant: "No Menu Place", RestaurantID: 2},
	}
	profiles := []model.RestaurantProfile{
		{Restaurant: "wok inn", SpicyRatio: csvio.NewFloat(0.5), AvgItemPrice: csvio.NewFloat(6)},
	}

	joined := JoinProfiles(orders, restaurants, profiles)
	if len(joined) != 3 {
		t.Fatalf("got %d rows", len(joined))
	}
	if joined[0].Restaurant != "Wok Inn" {
		t.Fatalf("restaurant = %q", joined[0].Restaurant)
	}
	if !joined[0].SpicyRatio.Valid || joined[0].SpicyRatio.Value != 0.5 {
		t.Fatalf("profile not matched case-insensitively: %+v", joined[0].SpicyRatio)
	}
	if joined[1].SpicyRatio.Valid {
		t.Fatalf("restaurant without a menu must keep null ratios")
	}
	if joined[2].Restaurant != "" {
		t.Fatalf("order without restaurant key resolved to %q", joined[2].Restaurant)
	}
}
