package tick

// Order is the sort key a Handler reports through its Order method. Handlers
// are visited by Dispatcher.Tick in ascending Order, so two subsystems
// that never reference each other can still place themselves correctly
// relative to the frame pipeline just by picking one of the well-known
// constants below, without any cross-reference between them.
type Order int

// Well-known tick orders, spaced widely enough that a subsystem can slot in
// just before or after one of these without colliding with its neighbours.
const (
	OrderFirst     Order = 0
	OrderPlacement Order = 100
	OrderInput     Order = 200
	OrderGame      Order = 300
	OrderAnimation Order = 400
	OrderPhysics   Order = 500
	OrderPreRender Order = 600
	OrderDefault   Order = 700
	OrderUI        Order = 800
	OrderLast      Order = 1000
)

// Less orders a before b, breaking ties by nothing -- equal orders are
// visited in connect order, matching ebus's HandlerMultipleOrdered contract
// for handlers the comparator reports as equivalent.
func Less(a, b Order) bool { return a < b }
