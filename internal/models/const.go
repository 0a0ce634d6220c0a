package models

// PointType задаёт вид события маршрута.
type PointType string

const (
	TypeTaxi        PointType = "taxi"
	TypeBus         PointType = "bus"
	TypeTrain       PointType = "train"
	TypeShip        PointType = "ship"
	TypeDrive       PointType = "drive"
	TypeFlight      PointType = "flight"
	TypeCheckIn     PointType = "check-in"
	TypeSightseeing PointType = "sightseeing"
	TypeRestaurant  PointType = "restaurant"
)

// PointTypes перечисляет виды событий в порядке показа в редакторе.
var PointTypes = []PointType{
	TypeTaxi,
	TypeBus,
	TypeTrain,
	TypeShip,
	TypeDrive,
	TypeFlight,
	TypeCheckIn,
	TypeSightseeing,
	TypeRestaurant,
}

// Valid сообщает, входит ли тип в перечень PointTypes.
func (t PointType) Valid() bool {
	for _, known := range PointTypes {
		if known == t {
			return true
		}
	}
	return false
}

// UpdateType классифицирует объём перерисовки после изменения.
// Хранилище передаёт значение подписчикам, не интерпретируя его.
type UpdateType string

const (
	UpdatePatch UpdateType = "PATCH"
	UpdateMinor UpdateType = "MINOR"
	UpdateMajor UpdateType = "MAJOR"
	UpdateInit  UpdateType = "INIT"
)

// UserAction описывает намерение пользователя, которое доска превращает в мутацию хранилища.
type UserAction string

const (
	ActionUpdatePoint UserAction = "UPDATE_POINT"
	ActionAddPoint    UserAction = "ADD_POINT"
	ActionDeletePoint UserAction = "DELETE_POINT"
)
