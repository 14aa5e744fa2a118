package leave

const (
	StatusRequested = "requested"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
)

const (
	KindPaid   = "paid"
	KindUnpaid = "unpaid"
	KindSick   = "sick"
	KindOther  = "other"
)

var Kinds = []string{KindPaid, KindUnpaid, KindSick, KindOther}
