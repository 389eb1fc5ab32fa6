package mailbox

import "furniture-delivery/internal/domain"

// DeliveryList is a view's in-memory copy of a delivery list.
type DeliveryList []domain.Delivery

// ApplyStatus sets status and action stamp on the delivery with u's id.
func (l DeliveryList) ApplyStatus(u domain.StatusUpdate) bool {
	for i := range l {
		if l[i].ID != u.DeliveryID {
			continue
		}
		l[i].Status = u.Status
		l[i].Action = domain.ActionStamp{Date: u.ActionDate, Time: u.ActionTime}
		return true
	}
	return false
}
