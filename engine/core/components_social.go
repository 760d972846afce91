package core

// Faction marks an entity as a political collective (kingdom, tribe,
// guild, cult, ...). Grounded on the teacher's Owner component
// (engine/core/components.go) generalized from "which player owns this
// unit" to a first-class faction entity with its own components.
type Faction struct {
	Name      string
	Color     uint32
	Defeated  bool
	CapitalID EntityID
}

func (Faction) Kind() ComponentKind { return KindFaction }

// GovernmentForm records how a faction is ruled.
type GovernmentForm struct {
	Form        string // monarchy, republic, theocracy, ...
	Stability   float64 // 0..1
	RulerID     EntityID
}

func (GovernmentForm) Kind() ComponentKind { return KindGovernmentForm }

// LawCode records a faction's legal doctrine.
type LawCode struct {
	Strictness float64
	Tenets     []string
}

func (LawCode) Kind() ComponentKind { return KindLawCode }

// DiplomaticRelation records standing between two factions.
type DiplomaticRelation struct {
	OtherFaction EntityID
	Standing     float64 // -1 (war) .. 1 (alliance)
	Status       string  // war, truce, peace, alliance
}

func (DiplomaticRelation) Kind() ComponentKind { return KindDiplomaticRelation }

// Treaty records a formal agreement between factions.
type Treaty struct {
	Parties  []EntityID
	Terms    string
	SignedTick uint64
	ExpiresTick uint64 // 0 = no expiry
}

func (Treaty) Kind() ComponentKind { return KindTreaty }

// SocialClass tags a stratum within a faction's population.
type SocialClass struct {
	Name          string
	PopulationShare float64
	UnrestLevel   float64
}

func (SocialClass) Kind() ComponentKind { return KindSocialClass }

// Title records a held office or noble rank.
type Title struct {
	Name       string
	HolderID   EntityID
	GrantedTick uint64
}

func (Title) Kind() ComponentKind { return KindTitle }

// SuccessionRule records how a title or throne passes on.
type SuccessionRule struct {
	Rule string // primogeniture, elective, appointed
	HeirID EntityID
}

func (SuccessionRule) Kind() ComponentKind { return KindSuccessionRule }

// Reputation records a faction's standing among its peers.
type Reputation struct {
	Honor     float64
	Infamy    float64
	Renown    float64
}

func (Reputation) Kind() ComponentKind { return KindReputation }

// AllianceMembership records which alliance bloc a faction belongs to.
type AllianceMembership struct {
	AllianceID EntityID
	JoinedTick uint64
}

func (AllianceMembership) Kind() ComponentKind { return KindAllianceMembership }

// WarParticipant marks a faction's participation in a war entity.
type WarParticipant struct {
	WarID EntityID
	Side  int // 0 or 1
}

func (WarParticipant) Kind() ComponentKind { return KindWarParticipant }

// SiegeState records an active siege against a settlement.
type SiegeState struct {
	SettlementID EntityID
	BesiegerID   EntityID
	StartedTick  uint64
	Progress     float64 // 0..1
}

func (SiegeState) Kind() ComponentKind { return KindSiegeState }

// TaxPolicy records a faction's tax rate and its effect on unrest.
type TaxPolicy struct {
	Rate           float64
	UnrestPerYear  float64
}

func (TaxPolicy) Kind() ComponentKind { return KindTaxPolicy }
