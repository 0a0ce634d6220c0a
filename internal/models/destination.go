package models

// Фотография пункта назначения
type Picture struct {
	Src         string `json:"src" yaml:"src"`
	Description string `json:"description" yaml:"description"`
}

// Destination представляет пункт назначения
type Destination struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Pictures    []Picture `json:"pictures" yaml:"pictures"`
}

func (d Destination) Clone() Destination {
	out := d
	if d.Pictures != nil {
		out.Pictures = append(make([]Picture, 0, len(d.Pictures)), d.Pictures...)
	}
	return out
}

// FindDestination ищет пункт по id; если пункта нет, это не ошибка.
func FindDestination(destinations []Destination, id string) (Destination, bool) {
	for _, dest := range destinations {
		if dest.ID == id {
			return dest, true
		}
	}
	return Destination{}, false
}

// FindDestinationByName ищет пункт по названию, как его выбирают в редакторе.
func FindDestinationByName(destinations []Destination, name string) (Destination, bool) {
	for _, dest := range destinations {
		if dest.Name == name {
			return dest, true
		}
	}
	return Destination{}, false
}
