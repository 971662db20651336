package model

import "strings"

// Category is the kind of activity an event is.
type Category string

const (
	CategorySports   Category = "sports"
	CategoryOutdoor  Category = "outdoor"
	CategoryCultural Category = "cultural"
	CategoryGames    Category = "games"
	CategoryFood     Category = "food"
	CategoryMinga    Category = "minga"
	CategoryOther    Category = "other"
)

type categoryInfo struct {
	label string
	icon  string
}

var categories = map[Category]categoryInfo{
	CategorySports:   {label: "Deportes", icon: "fa-futbol"},
	CategoryOutdoor:  {label: "Aire libre", icon: "fa-mountain"},
	CategoryCultural: {label: "Cultural", icon: "fa-masks-theater"},
	CategoryGames:    {label: "Juegos", icon: "fa-dice"},
	CategoryFood:     {label: "Comida", icon: "fa-utensils"},
	CategoryMinga:    {label: "Minga", icon: "fa-hands-helping"},
	CategoryOther:    {label: "Otro", icon: "fa-calendar"},
}

// ParseCategory normalises free text into a Category. Empty input becomes
// CategoryOther; unknown values are kept as-is.
func ParseCategory(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryOther
	}
	return Category(s)
}

// Known reports whether c is one of the listed categories.
func (c Category) Known() bool {
	_, ok := categories[c]
	return ok
}

// Label is the display name; unknown categories show their raw value.
func (c Category) Label() string {
	if info, ok := categories[c]; ok {
		return info.label
	}
	if c == "" {
		return categories[CategoryOther].label
	}
	return string(c)
}

// Icon is the display icon; unknown categories get the generic one.
func (c Category) Icon() string {
	if info, ok := categories[c]; ok {
		return info.icon
	}
	return categories[CategoryOther].icon
}
