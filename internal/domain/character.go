package domain

// Character is a record of the external character catalog. It is fetched per
// request and never stored.
type Character struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	House    string `json:"house"`
	Image    string `json:"image"`
	Species  string `json:"species,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Patronus string `json:"patronus,omitempty"`
	Actor    string `json:"actor,omitempty"`
}

const unknownValue = "Unknown"

type CharacterDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	House    string `json:"house"`
	Species  string `json:"species,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Patronus string `json:"patronus"`
	Actor    string `json:"actor"`
	ImageURL string `json:"imageUrl"`
}

// Detail projects the character for the detail view. Missing patronus and
// actor are reported as "Unknown".
func (c Character) Detail() CharacterDetail {
	d := CharacterDetail{
		ID:       c.ID,
		Name:     c.Name,
		House:    c.House,
		Species:  c.Species,
		Gender:   c.Gender,
		Patronus: c.Patronus,
		Actor:    c.Actor,
		ImageURL: c.Image,
	}
	if d.Patronus == "" {
		d.Patronus = unknownValue
	}
	if d.Actor == "" {
		d.Actor = unknownValue
	}
	return d
}
