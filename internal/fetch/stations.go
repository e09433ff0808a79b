package fetch

import "errors"

// ErrUnknownStation — станции нет в таблице station → region.
var ErrUnknownStation = errors.New("unknown station")

// ErrUnknownKind — тип локации не region/station/structure.
var ErrUnknownKind = errors.New("unknown location kind")

// DefaultStations — торговые хабы: станция → регион.
func DefaultStations() map[int64]int64 {
	return map[int64]int64{
		60003760: 10000002, // Jita IV - Moon 4 - Caldari Navy Assembly Plant
		60008494: 10000043, // Amarr VIII (Oris) - Emperor Family Academy
		60011866: 10000032, // Dodixie IX - Moon 20 - Federation Navy Assembly Plant
		60004588: 10000030, // Rens VI - Moon 8 - Brutor Tribe Treasury
		60005686: 10000042, // Hek VIII - Moon 12 - Boundless Creation Factory
	}
}
