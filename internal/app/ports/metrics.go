package ports

type OperationMetrics interface {
	RecordSuccess(operation string)
	RecordRejected(operation string)
	RecordFailure(operation string)
}
