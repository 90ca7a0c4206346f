package usecase

// Operation names used in logs and metric labels.
const (
	OperationOpen         = "open"
	OperationAuthenticate = "authenticate"
	OperationDeposit      = "deposit"
	OperationWithdraw     = "withdraw"
	OperationLoan         = "loan"
)
