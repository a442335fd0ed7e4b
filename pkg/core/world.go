package core

// Force is a faction led by a warlord. Its display name is the warlord's name.
type Force struct {
	NamedElement
	Status         uint8
	Warlord        *Character
	Advisor        *Character // nil when absent
	Capital        *City
	Cavalries      uint16
	Infantries     uint16
	Archers        uint16
	Subordinates   uint8
	Money          int32
	CityCount      uint8
	DiplomacyOwner *Character // nil when absent
}

// City is a settlement on the map
type City struct {
	NamedElement
	Axis            Axis
	MaxProductivity uint16
	CurProductivity uint16
	Growth          uint8
	AntiDisaster    uint8
	Soldiers        uint8
	CityType        uint16
	AffairsOwner    *Character // nil when absent
	ForceIndex      uint8
	Force           *Force // nil when unowned
}

// Legion is an army in the field. Its display name is the leader's name.
type Legion struct {
	NamedElement
	State         uint8
	Force         *Force
	Leader        *Character
	TargetCity    *City
	TotalSoldiers uint16
	Morale        uint8
	CurrentAxis   Axis
	TargetAxis    Axis
	Troops        []Troop
}

// GameData is the global state of one scenario
type GameData struct {
	Date             Date
	ForceIndex       uint8
	Force            *Force // player force, nil when unset
	Trust            uint8
	Number           uint8
	CurTaxRate       uint16
	CurConscription  Conscription
	NextTaxRate      uint16
	NextConscription Conscription
	TotalForces      uint8
	Name             string
}
