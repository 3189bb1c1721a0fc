package orders

import "github.com/rasoilink/rasoilink-backend/pkg/enums"

// transitionKey identifies one edge of the order lifecycle for one role.
type transitionKey struct {
	role enums.UserRole
	from enums.OrderStatus
	to   enums.OrderStatus
}

// allowedTransitions is the full role-aware order lifecycle. Suppliers move
// orders forward and may reject pending ones; vendors may only back out
// before the order ships.
var allowedTransitions = map[transitionKey]struct{}{
	{enums.UserRoleSupplier, enums.OrderStatusPending, enums.OrderStatusConfirmed}:   {},
	{enums.UserRoleSupplier, enums.OrderStatusPending, enums.OrderStatusCancelled}:   {},
	{enums.UserRoleSupplier, enums.OrderStatusConfirmed, enums.OrderStatusInTransit}: {},
	{enums.UserRoleSupplier, enums.OrderStatusInTransit, enums.OrderStatusDelivered}: {},
	{enums.UserRoleVendor, enums.OrderStatusPending, enums.OrderStatusCancelled}:     {},
	{enums.UserRoleVendor, enums.OrderStatusConfirmed, enums.OrderStatusCancelled}:   {},
}

// CanTransition reports whether role may move an order from one status to
// another.
func CanTransition(role enums.UserRole, from, to enums.OrderStatus) bool {
	_, ok := allowedTransitions[transitionKey{role: role, from: from, to: to}]
	return ok
}

// NextStatuses lists the statuses role may move an order into from its
// current status.
func NextStatuses(role enums.UserRole, from enums.OrderStatus) []enums.OrderStatus {
	var out []enums.OrderStatus
	for _, to := range []enums.OrderStatus{
		enums.OrderStatusConfirmed,
		enums.OrderStatusInTransit,
		enums.OrderStatusDelivered,
		enums.OrderStatusCancelled,
	} {
		if CanTransition(role, from, to) {
			out = append(out, to)
		}
	}
	return out
}
