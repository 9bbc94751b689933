package usecase

import (
	"strings"

	"github.com/Gunvolt24/purchase-order/internal/domain"
)

// membershipMarkers: порядок проверки маркеров определяет порядок членств в Effects.
var membershipMarkers = []struct {
	marker string
	kind   domain.MembershipType
}{
	{domain.BookClubMembership, domain.MembershipBook},
	{domain.VideoClubMembership, domain.MembershipVideo},
}

// DeriveEffects: чистая функция: какие членства активировать и какие позиции отгрузить.
// Членство определяется вхождением маркера в название позиции (Book, затем Video, без повторов).
// Физические позиции перечисляются в порядке запроса, дубликаты не схлопываются.
func DeriveEffects(req *domain.OrderRequest) domain.Effects {
	eff := domain.Effects{
		Memberships:     []domain.MembershipType{},
		PhysicalItemIDs: []int{},
	}
	if req == nil {
		return eff
	}

	for _, m := range membershipMarkers {
		for i := range req.Items {
			if strings.Contains(req.Items[i].Title, m.marker) {
				eff.Memberships = append(eff.Memberships, m.kind)
				break
			}
		}
	}

	for i := range req.Items {
		if req.Items[i].IsPhysicalItem {
			eff.PhysicalItemIDs = append(eff.PhysicalItemIDs, req.Items[i].ID)
		}
	}
	return eff
}
