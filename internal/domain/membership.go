package domain

// Маркеры членства в названии позиции.
const (
	BookClubMembership  = "Book Club Membership"
	VideoClubMembership = "Video Club Membership"
)

// MembershipType: тип клубного членства клиента.
type MembershipType string

const (
	MembershipBook  MembershipType = "Book"
	MembershipVideo MembershipType = "Video"
)

// Effects: производные бизнес-эффекты заказа.
type Effects struct {
	Memberships     []MembershipType `json:"memberships"`
	PhysicalItemIDs []int            `json:"physicalItemIds"`
}
