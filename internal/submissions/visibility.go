package submissions

import (
	"github.com/altproje-dev/altproje/internal/models"
	"github.com/altproje-dev/altproje/internal/types"
)

// Caller identifies the authenticated user an operation runs as. It is
// passed in explicitly; nothing in this package reads ambient session state.
type Caller struct {
	ID         uint
	Role       string
	SchoolCode string
}

// FilterVisible applies the listing policy to submissions whose Owner is
// loaded: owners see their own records, ADMIN sees everything, and a
// TUBITAK_OKUL_YETKILISI sees submissions from IDARECI/OGRETMEN/OGRENCI
// accounts sharing their school code. The persistence layer filters at the
// query level too; this is the policy in one reviewable place.
func FilterVisible(caller Caller, subs []models.Submission) []models.Submission {
	visible := make([]models.Submission, 0, len(subs))
	for _, sub := range subs {
		if CanView(caller, sub) {
			visible = append(visible, sub)
		}
	}
	return visible
}

func CanView(caller Caller, sub models.Submission) bool {
	switch caller.Role {
	case types.RoleAdmin:
		return true
	case types.RoleTubitakOkulYetkilisi:
		if caller.SchoolCode == "" || sub.Owner.SchoolCode != caller.SchoolCode {
			return false
		}
		switch sub.Owner.Role {
		case types.RoleIdareci, types.RoleOgretmen, types.RoleOgrenci:
			return true
		}
		return false
	default:
		return sub.OwnerID == caller.ID
	}
}
