package models

// State is a region of a country that requires one
type State struct {
	ID   int
	Name string
}

// Country is a delivery country offered at checkout
type Country struct {
	ID     int
	Name   string
	States []State
}

// Country IDs match the ones the PrestaShop demo posts
const (
	CountryFrance       = 8
	CountryUnitedStates = 21
)

// Countries returns the delivery countries, France first as the default
func Countries() []Country {
	return []Country{
		{ID: CountryFrance, Name: "France"},
		{ID: CountryUnitedStates, Name: "United States", States: []State{
			{ID: 4, Name: "Alabama"},
			{ID: 5, Name: "California"},
			{ID: 9, Name: "Florida"},
			{ID: 32, Name: "New York"},
			{ID: 44, Name: "Texas"},
			{ID: 48, Name: "Washington"},
		}},
	}
}

// FindCountry returns the country with id
func FindCountry(id int) (Country, bool) {
	for _, c := range Countries() {
		if c.ID == id {
			return c, true
		}
	}
	return Country{}, false
}

// RequiresState reports whether an address in this country needs a state
func (c Country) RequiresState() bool {
	return len(c.States) > 0
}

// FindState returns the state with id
func (c Country) FindState(id int) (State, bool) {
	for _, s := range c.States {
		if s.ID == id {
			return s, true
		}
	}
	return State{}, false
}
